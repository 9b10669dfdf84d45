/*
Package escrow implements a two-party atomic swap of tokens.

A maker opens an offer: it locks SellAmount of SellAsset and names the
BuyAmount of BuyAsset it wants in exchange. The offer is an Escrow
record stored at the address derived from ("escrow", maker, sell asset)
under the escrow program. The locked tokens sit in a custody account of
the ledger owned by that derived address. No private key exists for it,
only this extension can move the tokens by presenting the seeds.

Any taker that pays exactly BuyAmount settles the offer. In a single
transaction the taker receives the locked tokens, the custody account is
closed, the maker is paid and the record is removed. Storage deposits
return to the maker.
*/
package escrow
