/*
Package x contains the extensions of the swap application.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together in the app package.
x/token is the ledger holding balances, x/escrow implements the
two-party swap on top of it, x/sigs authenticates signers and
x/utils holds decorators shared by all of them.
*/
package x
