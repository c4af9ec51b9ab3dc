package outgoing

import (
	"time"

	"github.com/Moulick/firehose-inventory/resource"
)

// Document is the body sent to ElasticSearch, one per collected resource.
// The discriminators are lifted to the top level so they can be filtered on
// without knowing the shape of the resource data.
type Document struct {
	TimeStamp         time.Time         `json:"@timestamp"`
	State             string            `json:"state"`
	ResourceType      string            `json:"resource_type"`
	CloudServiceGroup string            `json:"cloud_service_group"`
	CloudServiceType  string            `json:"cloud_service_type"`
	ResourceID        string            `json:"resource_id"`
	Resource          resource.Resource `json:"resource"`
}

// NewDocument flattens a response collected at ts
func NewDocument(resp *resource.CloudServiceResponse, ts time.Time) Document {
	r := resp.Resource()
	return Document{
		TimeStamp:         ts.UTC(),
		State:             resp.State,
		ResourceType:      resp.ResourceType,
		CloudServiceGroup: r.Group(),
		CloudServiceType:  r.Type(),
		ResourceID:        r.ResourceID(),
		Resource:          r,
	}
}
