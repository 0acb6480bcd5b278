package stability

import "fmt"

// Tier is the qualitative stability class, ordered VeryLow < Low < Medium < High.
type Tier int

const (
	TierVeryLow Tier = iota
	TierLow
	TierMedium
	TierHigh
)

var tierNames = [...]string{"Very Low", "Low", "Medium", "High"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	i, err := lookup(tierNames[:], string(b), "tier")
	*t = Tier(i)
	return err
}

// Lifetime is an ordered bucket of estimated submoon lifetimes.
type Lifetime int

const (
	LifetimeUnder10My Lifetime = iota
	Lifetime10To50My
	Lifetime50To100My
	LifetimeOver100My
)

var lifetimeNames = [...]string{
	"<10 million years",
	"10–50 million years",
	"50–100 million years",
	">100 million years",
}

func (l Lifetime) String() string {
	if l < 0 || int(l) >= len(lifetimeNames) {
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
	return lifetimeNames[l]
}

func (l Lifetime) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Lifetime) UnmarshalText(b []byte) error {
	i, err := lookup(lifetimeNames[:], string(b), "lifetime")
	*l = Lifetime(i)
	return err
}

// Tidal is the tidal-force class, ordered Weak < Moderate < Strong < Extreme.
type Tidal int

const (
	TidalWeak Tidal = iota
	TidalModerate
	TidalStrong
	TidalExtreme
)

var tidalNames = [...]string{"Weak", "Moderate", "Strong", "Extreme"}

func (t Tidal) String() string {
	if t < 0 || int(t) >= len(tidalNames) {
		return fmt.Sprintf("Tidal(%d)", int(t))
	}
	return tidalNames[t]
}

func (t Tidal) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tidal) UnmarshalText(b []byte) error {
	i, err := lookup(tidalNames[:], string(b), "tidal tier")
	*t = Tidal(i)
	return err
}

func lookup(names []string, s, kind string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s: %q", kind, s)
}
