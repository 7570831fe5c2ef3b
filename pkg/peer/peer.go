package peer

// Entry binds a peer code to the address the rendezvous server observed when the code
// was registered.
type Entry struct {
	Code    string `cbor:"1,keyasint" json:"code"`
	Address string `cbor:"2,keyasint" json:"address"`
}
