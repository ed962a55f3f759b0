package searchindex

// Key prefixes inside the index database
const (
	keywordPrefix = "kw"
	metaKey       = "meta:sizer"
)

// makeKeywordKey generates the key for one keyword's posting list.
func makeKeywordKey(keyword string) []byte {
	return []byte(keywordPrefix + ":" + keyword)
}

// makeKeywordPrefix generates the iteration prefix for prefix lookups.
func makeKeywordPrefix(prefix string) []byte {
	return []byte(keywordPrefix + ":" + prefix)
}

// keywordFromKey strips the key prefix back off.
func keywordFromKey(key []byte) string {
	return string(key[len(keywordPrefix)+1:])
}
