// Command pvssctl is a thin demonstration CLI driving the pvss and scrape
// packages end to end. It carries no cryptographic logic of its own — see
// SPEC_FULL.md's CLI/demo component (C7), explicitly non-normative per
// spec.md's Non-goals.
package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pvss"
	"github.com/luxfi/pvss/scrape"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pvssctl",
		Short: "Demonstrate Schoenmakers PVSS and SCRAPE-DDH end to end",
	}
	root.AddCommand(newDemoCmd())
	return root
}

func newDemoCmd() *cobra.Command {
	var threshold, n int
	var scheme string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a full escrow -> distribute -> decrypt -> recover cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch scheme {
			case "pvss":
				return runPVSSDemo(cmd, threshold, n)
			case "scrape":
				return runSCRAPEDemo(cmd, threshold, n)
			default:
				return fmt.Errorf("pvssctl: unknown scheme %q (want pvss or scrape)", scheme)
			}
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "recovery threshold")
	cmd.Flags().IntVarP(&n, "parties", "n", 3, "number of parties")
	cmd.Flags().StringVarP(&scheme, "scheme", "s", "pvss", "pvss or scrape")
	return cmd
}

func runPVSSDemo(cmd *cobra.Command, t, n int) error {
	group := curve.Secp256k1{}

	keyPairs := make([]*pvss.KeyPair, n)
	pubKeys := make([]curve.Point, n)
	for i := range keyPairs {
		kp, err := pvss.GenerateKeyPair(group, rand.Reader)
		if err != nil {
			return err
		}
		keyPairs[i] = kp
		pubKeys[i] = kp.Public
	}

	escrow, err := pvss.NewEscrow(group, rand.Reader, t)
	if err != nil {
		return err
	}
	commitments := pvss.CreateCommitments(escrow)
	shares, err := pvss.SharesCreate(group, rand.Reader, escrow, pubKeys)
	if err != nil {
		return err
	}

	var triples []pvss.RecoveryTriple
	for i := 0; i < t; i++ {
		dec, err := pvss.ShareDecrypt(group, rand.Reader, keyPairs[i], shares[i])
		if err != nil {
			return err
		}
		triples = append(triples, pvss.RecoveryTriple{
			Encrypted: shares[i], PublicKey: pubKeys[i], Decrypted: dec,
		})
	}

	valid := pvss.GetValidRecoveryShares(group, t, triples)
	if len(valid) < t {
		return fmt.Errorf("pvssctl: only %d of %d required shares verified", len(valid), t)
	}
	decShares := make([]*pvss.DecryptedShare, len(valid))
	for i, tr := range valid {
		decShares[i] = tr.Decrypted
	}

	secret, err := pvss.Recover(group, decShares)
	if err != nil {
		return err
	}
	ok := pvss.VerifySecret(group, escrow.H, commitments, secret, escrow.Proof)
	cmd.Printf("pvss: recovered secret matches escrow: %v\n", ok && secret.Equal(escrow.Secret))
	return nil
}

func runSCRAPEDemo(cmd *cobra.Command, t, n int) error {
	group := curve.Secp256k1{}

	keyPairs := make([]*scrape.KeyPair, n)
	pubKeys := make([]curve.Point, n)
	for i := range keyPairs {
		kp, err := scrape.GenerateKeyPair(group, rand.Reader)
		if err != nil {
			return err
		}
		keyPairs[i] = kp
		pubKeys[i] = kp.Public
	}

	escrow, err := scrape.NewEscrow(group, rand.Reader, t, n)
	if err != nil {
		return err
	}
	commitments := scrape.CreateCommitments(escrow)
	encShares, err := scrape.SharesCreate(group, rand.Reader, escrow, pubKeys)
	if err != nil {
		return err
	}

	valid, err := scrape.VerifyEncryptedShares(group, rand.Reader, escrow.H, t, commitments, encShares, pubKeys)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("pvssctl: scrape batch verification failed")
	}

	decs := make([]*scrape.DecryptedShare, t)
	for i := 0; i < t; i++ {
		dec, err := scrape.ShareDecrypt(group, rand.Reader, keyPairs[i], encShares.E[i])
		if err != nil {
			return err
		}
		decs[i] = dec
	}
	identified, ok := scrape.ReorderDecryptShares(pubKeys, pubKeys[:t], decs)
	if !ok {
		return fmt.Errorf("pvssctl: failed to reorder decrypted shares")
	}

	secret, err := scrape.Recover(group, identified)
	if err != nil {
		return err
	}
	verified := scrape.VerifySecret(group, escrow.H, escrow.C0, secret, escrow.Proof)
	cmd.Printf("scrape: recovered secret matches escrow: %v\n", verified && secret.Equal(escrow.Secret))
	return nil
}
