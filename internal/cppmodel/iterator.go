package cppmodel

// DefaultIteratorName is the iteration-protocol name under which a plain
// begin/end pair is exposed.
const DefaultIteratorName = "__iter__"

// Iterator is a derived entity: a begin/end method pair extracted from a
// class. It never appears in the input; the iterator transform synthesizes it.
type Iterator struct {
	Parent *Class
	Name   string
	Begin  string
	End    string
}
