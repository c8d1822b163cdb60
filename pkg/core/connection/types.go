package connection

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tilewire/pkg/errors"
)

// ConnectionType selects which ends of a connection carry an arrowhead.
type ConnectionType int

const (
	ArrowNone ConnectionType = iota
	ArrowTo
	ArrowFrom
	ArrowToAndFrom
)

var connectionTypeNames = map[ConnectionType]string{
	ArrowNone:      "none",
	ArrowTo:        "arrow-to",
	ArrowFrom:      "arrow-from",
	ArrowToAndFrom: "arrow-to-and-from",
}

func (t ConnectionType) String() string {
	if s, ok := connectionTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("connection-type(%d)", int(t))
}

// HasArrowTo reports whether the destination end carries an arrowhead.
func (t ConnectionType) HasArrowTo() bool { return t == ArrowTo || t == ArrowToAndFrom }

// HasArrowFrom reports whether the origin end carries an arrowhead.
func (t ConnectionType) HasArrowFrom() bool { return t == ArrowFrom || t == ArrowToAndFrom }

// ParseConnectionType parses a connection type name. The empty string parses
// as ArrowNone.
func ParseConnectionType(s string) (ConnectionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ArrowNone, nil
	}
	for t, name := range connectionTypeNames {
		if name == s {
			return t, nil
		}
	}
	return ArrowNone, errors.New(errors.ErrCodeInvalidRecord, "unknown connection type %q", s)
}

func (t ConnectionType) MarshalText() ([]byte, error) {
	if _, ok := connectionTypeNames[t]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "cannot marshal %s", t)
	}
	return []byte(t.String()), nil
}

func (t *ConnectionType) UnmarshalText(b []byte) error {
	v, err := ParseConnectionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RoutingMode selects how waypoints are turned into a drawable path.
type RoutingMode int

const (
	// RoutingNone is treated like Bezier.
	RoutingNone RoutingMode = iota
	// Routed draws an orthogonal polyline around both nodes.
	Routed
	// Bezier draws a single cubic curve from the origin to the destination.
	Bezier
)

var routingModeNames = map[RoutingMode]string{
	RoutingNone: "none",
	Routed:      "routed",
	Bezier:      "bezier",
}

func (m RoutingMode) String() string {
	if s, ok := routingModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("routing-mode(%d)", int(m))
}

// ParseRoutingMode parses a routing mode name. The empty string parses as
// RoutingNone.
func ParseRoutingMode(s string) (RoutingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoutingNone, nil
	}
	for m, name := range routingModeNames {
		if name == s {
			return m, nil
		}
	}
	return RoutingNone, errors.New(errors.ErrCodeInvalidRecord, "unknown routing mode %q", s)
}

func (m RoutingMode) MarshalText() ([]byte, error) {
	if _, ok := routingModeNames[m]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "cannot marshal %s", m)
	}
	return []byte(m.String()), nil
}

func (m *RoutingMode) UnmarshalText(b []byte) error {
	v, err := ParseRoutingMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
