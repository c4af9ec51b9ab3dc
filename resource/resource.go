// Package resource holds the envelope every collected cloud service is returned in.
package resource

import (
	"encoding/json"

	"github.com/Moulick/firehose-inventory/layout"
)

const (
	ProviderAWS = "aws"

	StateSuccess             = "SUCCESS"
	ResourceTypeCloudService = "inventory.CloudService"
)

// Meta is the set of tabs shown for a cloud service type.
// One Meta is built per type and shared by all of its resources.
type Meta struct {
	layouts []layout.Layout
}

// NewMeta keeps the tabs in the given order
func NewMeta(layouts ...layout.Layout) *Meta {
	return &Meta{layouts: append([]layout.Layout(nil), layouts...)}
}

// Layouts returns the top level tabs
func (m *Meta) Layouts() []layout.Layout {
	return append([]layout.Layout(nil), m.layouts...)
}

func (m *Meta) MarshalJSON() ([]byte, error) {
	type subData struct {
		Layouts []layout.Layout `json:"layouts"`
	}
	type view struct {
		SubData subData `json:"sub_data"`
	}

	layouts := m.layouts
	if layouts == nil {
		layouts = []layout.Layout{}
	}

	return json.Marshal(struct {
		View view `json:"view"`
	}{View: view{SubData: subData{Layouts: layouts}}})
}

// Reference identifies the resource at the provider
type Reference struct {
	ResourceID   string `json:"resource_id"`
	ExternalLink string `json:"external_link,omitempty"`
}

// CloudServiceResource is embedded by every concrete resource
type CloudServiceResource struct {
	Provider          string    `json:"provider"`
	CloudServiceGroup string    `json:"cloud_service_group"`
	CloudServiceType  string    `json:"cloud_service_type"`
	Name              string    `json:"name,omitempty"`
	Account           string    `json:"account,omitempty"`
	RegionCode        string    `json:"region_code,omitempty"`
	Reference         Reference `json:"reference"`
	Metadata          *Meta     `json:"metadata"`
}

func (r *CloudServiceResource) Group() string      { return r.CloudServiceGroup }
func (r *CloudServiceResource) Type() string       { return r.CloudServiceType }
func (r *CloudServiceResource) Meta() *Meta        { return r.Metadata }
func (r *CloudServiceResource) ResourceID() string { return r.Reference.ResourceID }

// Resource is what a response carries, any concrete cloud service type satisfies it
type Resource interface {
	Group() string
	Type() string
	Meta() *Meta
	ResourceID() string
}

// Option sets per record fields of the base resource
type Option func(*CloudServiceResource)

// WithAccount sets the account the resource was collected from
func WithAccount(account string) Option {
	return func(r *CloudServiceResource) {
		r.Account = account
	}
}

// WithRegion sets the region the resource lives in
func WithRegion(region string) Option {
	return func(r *CloudServiceResource) {
		r.RegionCode = region
	}
}

// Apply runs opts against r
func (r *CloudServiceResource) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}
