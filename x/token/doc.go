/*
Package token is the ledger of the swap application.

Every asset has a Mint, identified by an address, that defines its
decimals and the identity allowed to issue it. Balances live in token
accounts: one account holds one asset for one owner, at the address
derived from ("account", owner, asset). Creating an account costs a
storage deposit in native units, taken from the payer's Wallet and
refunded when the account is closed.

The owner of an account is its only authority. A person proves it with
a signature on the transaction, a derived address proves it with the
seeds and bump that produce it (see DerivedAuthority).
*/
package token
