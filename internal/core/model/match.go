package model

// MatchResult groups everything both stores hold under one normalized title
// key. Either side may be empty when the key exists in only one store.
type MatchResult struct {
	Key    string      `json:"key"`
	Movies []Movie     `json:"movies"`
	Nodes  []MovieNode `json:"nodes"`
}

// MoviePair is one (document, graph node) correspondence. Ambiguous is set
// when the normalized key matched more than one entity on either side, in
// which case the full cross-product is emitted rather than an arbitrary pick.
type MoviePair struct {
	Movie     Movie     `json:"movie"`
	Node      MovieNode `json:"node"`
	Ambiguous bool      `json:"ambiguous"`
}
