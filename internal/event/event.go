// Package event carries what happened during one simulation tick to the
// render surfaces. Events are created by the combat systems, turned into
// effect entities by the factory and published in session snapshots.
package event

// BurstKind tells the renderer how to color a particle burst.
type BurstKind uint8

const (
	BurstImpact BurstKind = iota
	BurstHurt
	BurstShield
	BurstExplosion
	BurstSmoke
	BurstStrike
	BurstSpark
)

var burstNames = [...]string{"impact", "hurt", "shield", "explosion", "smoke", "strike", "spark"}

func (k BurstKind) String() string {
	if int(k) < len(burstNames) {
		return burstNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k BurstKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Bolt is one lightning arc. Click bolts come from manual strikes.
type Bolt struct {
	FromX float64 `json:"fromX" msgpack:"fromX"`
	FromY float64 `json:"fromY" msgpack:"fromY"`
	ToX   float64 `json:"toX" msgpack:"toX"`
	ToY   float64 `json:"toY" msgpack:"toY"`
	Chain bool    `json:"chain,omitempty" msgpack:"chain,omitempty"`
	Crit  bool    `json:"crit,omitempty" msgpack:"crit,omitempty"`
	Click bool    `json:"click,omitempty" msgpack:"click,omitempty"`
}

// Burst spawns Count particles at a point.
type Burst struct {
	X     float64   `json:"x" msgpack:"x"`
	Y     float64   `json:"y" msgpack:"y"`
	Count int       `json:"count" msgpack:"count"`
	Kind  BurstKind `json:"kind" msgpack:"kind"`
}

// Number is a floating damage or heal label.
type Number struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Text string  `json:"text" msgpack:"text"`
	Crit bool    `json:"crit,omitempty" msgpack:"crit,omitempty"`
}

// Coin is gold flying from a kill to the purse.
type Coin struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Amount int     `json:"amount" msgpack:"amount"`
}

// Events accumulates one tick's worth of events.
type Events struct {
	Bolts   []Bolt   `json:"bolts,omitempty" msgpack:"bolts,omitempty"`
	Bursts  []Burst  `json:"bursts,omitempty" msgpack:"bursts,omitempty"`
	Numbers []Number `json:"numbers,omitempty" msgpack:"numbers,omitempty"`
	Coins   []Coin   `json:"coins,omitempty" msgpack:"coins,omitempty"`
}

func (e *Events) Bolt(b Bolt) { e.Bolts = append(e.Bolts, b) }

func (e *Events) Burst(x, y float64, n int, kind BurstKind) {
	e.Bursts = append(e.Bursts, Burst{X: x, Y: y, Count: n, Kind: kind})
}

func (e *Events) Number(x, y float64, text string, crit bool) {
	e.Numbers = append(e.Numbers, Number{X: x, Y: y, Text: text, Crit: crit})
}

func (e *Events) Coin(x, y float64, amount int) {
	e.Coins = append(e.Coins, Coin{X: x, Y: y, Amount: amount})
}

// Reset empties the accumulator, keeping its backing arrays.
func (e *Events) Reset() {
	e.Bolts = e.Bolts[:0]
	e.Bursts = e.Bursts[:0]
	e.Numbers = e.Numbers[:0]
	e.Coins = e.Coins[:0]
}

// Clone returns a copy that does not share storage with e.
func (e *Events) Clone() Events {
	return Events{
		Bolts:   append([]Bolt(nil), e.Bolts...),
		Bursts:  append([]Burst(nil), e.Bursts...),
		Numbers: append([]Number(nil), e.Numbers...),
		Coins:   append([]Coin(nil), e.Coins...),
	}
}

// Empty reports whether nothing happened.
func (e *Events) Empty() bool {
	return len(e.Bolts) == 0 && len(e.Bursts) == 0 && len(e.Numbers) == 0 && len(e.Coins) == 0
}
