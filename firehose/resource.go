// Package firehose describes Kinesis Data Firehose delivery streams to the inventory.
package firehose

import (
	"fmt"

	"github.com/Moulick/firehose-inventory/incoming"
	"github.com/Moulick/firehose-inventory/resource"
)

const (
	CloudServiceGroup = "KinesisDataFirehose"
	CloudServiceType  = "DeliveryStream"

	consoleLink = "https://console.aws.amazon.com/firehose/home?region=%s#/details/%s"
)

// DeliveryStreamResource is one delivery stream as stored in the inventory
type DeliveryStreamResource struct {
	resource.CloudServiceResource
	Data incoming.DeliveryStreamDescription `json:"data"`
}

// NewDeliveryStreamResource validates data and wraps it.
// A validation error is returned as is, and no resource is built.
func NewDeliveryStreamResource(data incoming.DeliveryStreamDescription, opts ...resource.Option) (*DeliveryStreamResource, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	r := &DeliveryStreamResource{
		CloudServiceResource: resource.CloudServiceResource{
			Provider:          resource.ProviderAWS,
			CloudServiceGroup: CloudServiceGroup,
			CloudServiceType:  CloudServiceType,
			Name:              data.DeliveryStreamName,
			Reference:         resource.Reference{ResourceID: data.DeliveryStreamARN},
			Metadata:          FirehoseMeta,
		},
		Data: data,
	}
	r.Apply(opts...)

	if r.RegionCode != "" {
		r.Reference.ExternalLink = fmt.Sprintf(consoleLink, r.RegionCode, data.DeliveryStreamName)
	}

	return r, nil
}

// FirehoseResponse carries a single DeliveryStreamResource
type FirehoseResponse struct {
	resource.CloudServiceResponse
}

func NewFirehoseResponse(r *DeliveryStreamResource) *FirehoseResponse {
	return &FirehoseResponse{CloudServiceResponse: resource.NewCloudServiceResponse(r)}
}

// DeliveryStream returns the wrapped resource with its concrete type
func (r *FirehoseResponse) DeliveryStream() *DeliveryStreamResource {
	ds, _ := r.Payload.(*DeliveryStreamResource)
	return ds
}
