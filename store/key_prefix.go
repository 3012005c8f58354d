package store

// Key prefixes namespacing the records of the persistent block store within
// one DatabaseProvider.
const (
	// PrefixBlock + block hash -> blockRecord (block envelope + balance)
	PrefixBlock = "b:"
	// PrefixHead + account key -> head block hash
	PrefixHead = "h:"
	// PrefixUnspent + send hash -> marker byte while the send is unreceived
	PrefixUnspent = "u:"
)

func blockKey(hash []byte) []byte {
	return append([]byte(PrefixBlock), hash...)
}

func headKey(account []byte) []byte {
	return append([]byte(PrefixHead), account...)
}

func unspentKey(hash []byte) []byte {
	return append([]byte(PrefixUnspent), hash...)
}
