// Package pool implements a shielded-pool spend proof in the style of the
// Zcash commitment/nullifier design.
//
// Overview:
//   - Spendable rights are leaf commitments in a fixed-depth Merkle accumulator
//   - A commitment is the x-coordinate of secret * G on BLS12-377
//   - Spending publishes a nullifier (MiMC of the secret) together with a
//     Groth16 proof that the secret's commitment is a member of the accumulator
//   - The ledger records nullifiers to reject repeated spends
//
// Security model:
//   - Uses MiMC over the BW6-761 scalar field for leaf hashing, tree
//     compression and nullifier derivation
//   - Circuits are compiled over BW6-761 so that BLS12-377 G1 points are
//     native field values and scalar multiplication has an in-circuit gadget
//   - Randomness comes from crypto/rand
//
// Known weakness, kept on purpose: the leaf binds only the x-coordinate of
// the public key. A secret s and its mirror GroupOrder-s derive opposite
// points with the same x, hence the same leaf, while hashing to different
// nullifiers. One accumulated commitment is therefore spendable twice under
// two distinct nullifiers, and the ledger cannot connect the two spends.
// This package reproduces that behavior for study; see MirrorSecret.
//
// References:
//   - Zcash protocol specification, https://zips.z.cash/protocol/protocol.pdf
//   - Zerocash: Decentralized Anonymous Payments from Bitcoin (Ben-Sasson et al., 2014)
package pool
