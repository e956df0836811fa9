package models

// Record is the flattened form of a node or way.
//
// Values are string, [2]float64 (pos), map[string]string (created, address)
// or []string (node_refs).
type Record map[string]any

// Keys of a Record with fixed meaning.
const (
	KeyType     = "type"
	KeyCreated  = "created"
	KeyPos      = "pos"
	KeyAddress  = "address"
	KeyNodeRefs = "node_refs"
	KeyTagType  = "tag_type"
)

// Address returns the address sub-mapping, or nil.
func (r Record) Address() map[string]string {
	addr, _ := r[KeyAddress].(map[string]string)

	return addr
}

// NodeRefs returns the node reference list, or nil.
func (r Record) NodeRefs() []string {
	refs, _ := r[KeyNodeRefs].([]string)

	return refs
}
