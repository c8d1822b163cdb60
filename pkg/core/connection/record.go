package connection

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// Record is the persisted description of a connection. It is the only shape
// that crosses the core's boundary; everything else is derived from it and
// from the live node set.
type Record struct {
	ID              string                `json:"id" yaml:"id" bson:"id" toml:"id" validate:"required"`
	SyncID          string                `json:"sync_id,omitempty" yaml:"sync_id,omitempty" bson:"sync_id,omitempty" toml:"sync_id,omitempty"`
	FromNodeID      string                `json:"from" yaml:"from" bson:"from" toml:"from" validate:"required"`
	ToNodeID        string                `json:"to" yaml:"to" bson:"to" toml:"to" validate:"required"`
	FromOrientation connector.Orientation `json:"from_side" yaml:"from_side" bson:"from_side" toml:"from_side"`
	ToOrientation   connector.Orientation `json:"to_side" yaml:"to_side" bson:"to_side" toml:"to_side"`
	Color           string                `json:"color,omitempty" yaml:"color,omitempty" bson:"color,omitempty" toml:"color,omitempty" validate:"omitempty,hexcolor"`
	Thickness       float64               `json:"thickness,omitempty" yaml:"thickness,omitempty" bson:"thickness,omitempty" toml:"thickness,omitempty" validate:"gte=0,lte=100"`
	Opacity         float64               `json:"opacity" yaml:"opacity" bson:"opacity" toml:"opacity" validate:"gte=0,lte=1"`
	ConnectionType  ConnectionType        `json:"type" yaml:"type" bson:"type" toml:"type"`
	RoutingMode     RoutingMode           `json:"routing" yaml:"routing" bson:"routing" toml:"routing"`
}

// NewRecord returns a record between two node sides with fresh ids and the
// default appearance: opaque, bezier routed, arrow at the destination.
func NewRecord(from string, fromSide connector.Orientation, to string, toSide connector.Orientation) Record {
	r := defaultRecord()
	r.ID = newID()
	r.SyncID = newID()
	r.FromNodeID, r.FromOrientation = from, fromSide
	r.ToNodeID, r.ToOrientation = to, toSide
	return r
}

func defaultRecord() Record {
	return Record{
		Opacity:        1,
		ConnectionType: ArrowTo,
		RoutingMode:    Bezier,
	}
}

// newID returns a dash-less random UUID.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// UpdateSyncID replaces the record's sync id with a fresh one and returns it.
// Hosts rotate the sync id whenever they persist a change so that peers can
// detect stale copies.
func (r *Record) UpdateSyncID() string {
	r.SyncID = newID()
	return r.SyncID
}

// Matches reports whether r and other join the same node sides. Ids, sync ids
// and styling are ignored.
func (r Record) Matches(other Record) bool {
	return r.FromNodeID == other.FromNodeID &&
		r.ToNodeID == other.ToNodeID &&
		r.FromOrientation == other.FromOrientation &&
		r.ToOrientation == other.ToOrientation
}

// Validate checks the record's fields. Unknown node ids are not an error here;
// a record may legitimately name a node that has not been created yet.
func (r Record) Validate() error {
	if err := errors.ValidateStruct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "connection %q", r.ID)
	}
	for _, id := range []string{r.ID, r.FromNodeID, r.ToNodeID} {
		if err := errors.ValidateID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecord, err, "connection %q", r.ID)
		}
	}
	if !r.FromOrientation.Valid() {
		return errors.New(errors.ErrCodeInvalidOrientation, "connection %q: from_side must be left, top, right or bottom", r.ID)
	}
	if !r.ToOrientation.Valid() {
		return errors.New(errors.ErrCodeInvalidOrientation, "connection %q: to_side must be left, top, right or bottom", r.ID)
	}
	return nil
}

// recordFields has Record's fields without its methods, so decoding into it
// does not recurse.
type recordFields Record

// UnmarshalJSON fills fields missing from the input with the defaults used by
// NewRecord.
func (r *Record) UnmarshalJSON(b []byte) error {
	v := recordFields(defaultRecord())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Record(v)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	v := recordFields(defaultRecord())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*r = Record(v)
	return nil
}
