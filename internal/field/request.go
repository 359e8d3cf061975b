package field

import "strings"

// Kind tags a resolved field request. Prefix dispatch happens once, when
// the request is parsed; the rest of the pipeline switches on the tag.
type Kind int

const (
	Raw Kind = iota
	Mean
	SD
	ScaledSD
	Density
	KineticEnergy
	Speed
	Richardson
	Streamline
)

func (k Kind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Mean:
		return "mean"
	case SD:
		return "sd"
	case ScaledSD:
		return "scaled sd"
	case Density:
		return "density"
	case KineticEnergy:
		return "ke"
	case Speed:
		return "speed"
	case Richardson:
		return "richardson"
	case Streamline:
		return "streamline"
	}
	return "unknown"
}

// Request is a parsed field name. Name keeps the original spelling for
// titles and overlay comparison; Base is the wrapped field for the
// spanwise-statistic kinds.
type Request struct {
	Name string
	Kind Kind
	Base string
}

// Parse classifies a field name. Prefixes are case-sensitive and checked
// in order; anything unrecognized is a raw variable read.
func Parse(name string) Request {
	switch {
	case strings.HasPrefix(name, "Mean "):
		return Request{Name: name, Kind: Mean, Base: strings.TrimPrefix(name, "Mean ")}
	case strings.HasPrefix(name, "Scaled SD "):
		return Request{Name: name, Kind: ScaledSD, Base: strings.TrimPrefix(name, "Scaled SD ")}
	case strings.HasPrefix(name, "SD "):
		return Request{Name: name, Kind: SD, Base: strings.TrimPrefix(name, "SD ")}
	case name == "Density":
		return Request{Name: name, Kind: Density}
	case name == "KE":
		return Request{Name: name, Kind: KineticEnergy}
	case name == "speed":
		return Request{Name: name, Kind: Speed}
	case name == "Ri":
		return Request{Name: name, Kind: Richardson}
	case name == "Streamline":
		return Request{Name: name, Kind: Streamline}
	}
	return Request{Name: name, Kind: Raw, Base: name}
}

// Reduced reports whether the request carries a spanwise-statistic prefix.
func (r Request) Reduced() bool {
	return r.Kind == Mean || r.Kind == SD || r.Kind == ScaledSD
}
