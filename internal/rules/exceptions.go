// Package rules holds the static lookup tables and patterns used to clean
// OSM address tags. Every value here is built once and only read afterwards.
package rules

import "sync"

// ExceptionKey identifies a tag that needs a hand-written fix. An empty ID
// makes the rule apply to every element.
type ExceptionKey struct {
	Key   string
	Value string
	ID    string
}

// Pair is a replacement tag.
type Pair struct {
	Key   string
	Value string
}

// ExceptionEntry is one row of the exception table.
type ExceptionEntry struct {
	Match ExceptionKey
	Pairs []Pair
}

// ExceptionTable maps known-bad tag values to their replacement tags.
type ExceptionTable struct {
	entries map[ExceptionKey][]Pair
}

// NewExceptionTable builds a table from entries. When two entries share a
// key the later one wins.
func NewExceptionTable(entries ...ExceptionEntry) *ExceptionTable {
	t := &ExceptionTable{entries: make(map[ExceptionKey][]Pair, len(entries))}
	for _, e := range entries {
		t.entries[e.Match] = e.Pairs
	}

	return t
}

// Lookup resolves a tag on the element with the given id. Rules without an
// id are consulted first; id-scoped rules are only tried when that misses.
func (t *ExceptionTable) Lookup(key, value, id string) ([]Pair, bool) {
	if pairs, ok := t.entries[ExceptionKey{Key: key, Value: value}]; ok {
		return pairs, true
	}

	if id == "" {
		return nil, false
	}

	pairs, ok := t.entries[ExceptionKey{Key: key, Value: value, ID: id}]

	return pairs, ok
}

// Len returns the number of distinct keys in the table.
func (t *ExceptionTable) Len() int {
	return len(t.entries)
}

// Exceptions returns the built-in exception table for the Dallas / Fort Worth extract.
var Exceptions = sync.OnceValue(func() *ExceptionTable {
	return NewExceptionTable(defaultExceptions...)
})

func street(v string) Pair      { return Pair{Key: "addr:street", Value: v} }
func housenumber(v string) Pair { return Pair{Key: "addr:housenumber", Value: v} }
func city(v string) Pair        { return Pair{Key: "addr:city", Value: v} }
func state(v string) Pair       { return Pair{Key: "addr:state", Value: v} }
func postcode(v string) Pair    { return Pair{Key: "addr:postcode", Value: v} }

func onStreet(v string, pairs ...Pair) ExceptionEntry {
	return ExceptionEntry{Match: ExceptionKey{Key: "addr:street", Value: v}, Pairs: pairs}
}

func onPostcode(v, id string, pairs ...Pair) ExceptionEntry {
	return ExceptionEntry{Match: ExceptionKey{Key: "addr:postcode", Value: v, ID: id}, Pairs: pairs}
}

// Order matters: the table is built last-wins.
var defaultExceptions = []ExceptionEntry{
	onStreet("5223 alpha road dallas tx 75240",
		street("Alpha Road"), housenumber("5223"), city("Dallas"), state("TX"), postcode("75240")),
	onStreet("5229 alpha road dallas tx 75240",
		street("Alpha Road"), housenumber("5229"), city("Dallas"), state("TX"), postcode("75240")),
	onStreet("5705", street("Ledgestone Drive"), city("Fort Worth")),
	onStreet("7817 kermit ave fort worth tx",
		street("Kermit Avenue"), housenumber("7817"), city("Fort Worth"), state("TX")),
	onStreet("1001 Jones Street", street("Jones Street"), housenumber("1001")),
	onStreet("221 W. Lancaster Ave", street("West Lancaster Ave"), housenumber("221")),
	onStreet("500 Crescent Court", street("Crescent Court"), housenumber("500")),
	onStreet("400 W. McDermott Drive", street("West McDermott Drive"), housenumber("400")),
	onStreet("3909 Swiss Ave.", street("Swiss Avenue"), housenumber("3909")),
	onStreet("923 Pennsylvania Avenue", street("Pennsylvania Avenue"), housenumber("923")),
	onStreet("4201", street("Vintage Boulevard")),
	{Match: ExceptionKey{Key: "addr:housenumber", Value: "Vintage"}, Pairs: []Pair{housenumber("4201")}},
	{Match: ExceptionKey{Key: "addr:housenumber", Value: "972-788-2591"}, Pairs: []Pair{{Key: "addr:phone", Value: "972-788-2591"}}},
	onStreet("75062", street("West Northgate Drive")),
	onStreet("Arapaho", street("Arapaho Road")),
	onStreet("Arbor Creek", street("Arbor Creek Road")),
	onStreet("Arctic", street("Arctic Lane")),
	onStreet("Cantrell Sansom", street("Cantrell Sansom Road")),
	onStreet("Cedar Sage", street("Cedar Sage Drive")),
	onStreet("Country Club", street("Country Club Road")),
	onStreet("E Kearney", street("East Kearney Street")),
	onStreet("Everest", street("Everest Drive")),
	onStreet("Fawn", street("Fawn Drive")),
	onStreet("Featherston", street("Featherston Street")),
	onStreet("Goldmark", street("Goldmark Drive")),
	onStreet("Highgrove", street("Highgrove Drive")),
	onStreet("Huddleston", street("Huddleston Street")),
	onStreet("I 30 Frontage", street("I-30 Frontage Road")),
	onStreet("Kroger Gas", street("North Beach Street")),
	{Match: ExceptionKey{Key: "addr:housename", Value: "North Beach Street"}, Pairs: []Pair{{Key: "addr:housename", Value: "Kroger Gas"}}},
	onStreet("McDermott", street("McDermott Road")),
	onStreet("Millmar", street("Millmar Drive")),
	onStreet("N. Beckley", street("North Beckley Avenue")),
	onStreet("North Collins", street("North Collins Street")),
	onStreet("Spanish Oaks", street("Spanish Oaks Drive")),
	onStreet("Valley View", street("Valley View Drive")),
	onStreet("W Park Row", street("West Park Row Drive")),
	onStreet("West Henderson", street("West Henderson Street")),
	onStreet("West Park Row", street("West Park Row Drive")),
	onStreet("Western Center", street("Western Center Boulevard")),
	onStreet("Wildfowl", street("Wildfowl Drive")),
	onStreet("South Ridgeway", street("South Ridgeway Drive")),
	onStreet("Webb Chapel Road 200", street("Webb Chapel Road Suite 200")),
	onStreet("County Road 234;CR 234", street("County Road 234")),
	onStreet("Blvd 26 North", street("Grapevine Highway")),
	onStreet("Hwy N 287", street("Highway 287 North")),
	onPostcode("Denton, TX", "", postcode("76210")),
	onPostcode("74137", "", postcode("75137")),
	onPostcode("TX", "2387624602", postcode("75226")),
	// Duplicate of the row above; last-wins keeps 75044.
	onPostcode("TX", "2387624602", postcode("75044")),
	onPostcode("TX", "230238099", postcode("75226")),
	onPostcode("TX", "273516914", postcode("75034")),
	onPostcode("Texas", "270679006", postcode("76109")),
}
