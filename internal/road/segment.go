package road

// Column names of a road table. Lookup is case-insensitive.
const (
	ColFrom     = "From"
	ColTo       = "To"
	ColGreen    = "Green_Time"
	ColRed      = "Red_Time"
	ColOffset   = "Start_Time"
	ColDistance = "Distant"
)

// Columns lists every column a road table must provide.
var Columns = []string{ColFrom, ColTo, ColGreen, ColRed, ColOffset, ColDistance}

// Segment is one road record: an undirected link between two intersections
// gated by a periodic signal.
type Segment struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Green    float64 `json:"green"`    // seconds of green per cycle
	Red      float64 `json:"red"`      // seconds of red per cycle
	Offset   float64 `json:"offset"`   // phase shift in seconds
	Distance float64 `json:"distance"` // length units
}
