package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moulick/firehose-inventory/layout"
)

type widget struct {
	CloudServiceResource
	Data map[string]string `json:"data"`
}

func TestMetaJSON(t *testing.T) {
	meta := NewMeta(
		layout.Item("Details", "", layout.TextField("Name", "data.name")),
		layout.Table("Tags", "data.tags", layout.TextField("Key", "key")),
	)

	b, err := json.Marshal(meta)
	require.NoError(t, err)

	assert.JSONEq(t, `{"view": {"sub_data": {"layouts": [
		{"name": "Details", "type": "item", "options": {"fields": [{"name": "Name", "key": "data.name", "type": "text", "options": {}}]}},
		{"name": "Tags", "type": "table", "options": {"root_path": "data.tags", "fields": [{"name": "Key", "key": "key", "type": "text", "options": {}}]}}
	]}}}`, string(b))
}

func TestOptions(t *testing.T) {
	r := CloudServiceResource{Provider: ProviderAWS}
	r.Apply(WithAccount("123456789012"), WithRegion("eu-west-1"))

	assert.Equal(t, "123456789012", r.Account)
	assert.Equal(t, "eu-west-1", r.RegionCode)
}

func TestCloudServiceResponse(t *testing.T) {
	meta := NewMeta()
	w := &widget{
		CloudServiceResource: CloudServiceResource{
			Provider:          ProviderAWS,
			CloudServiceGroup: "Group",
			CloudServiceType:  "Type",
			Reference:         Reference{ResourceID: "id-1"},
			Metadata:          meta,
		},
		Data: map[string]string{"name": "w"},
	}

	resp := NewCloudServiceResponse(w)
	assert.Same(t, w, resp.Resource())
	assert.Equal(t, "Group", resp.Resource().Group())
	assert.Equal(t, "id-1", resp.Resource().ResourceID())

	b, err := json.Marshal(&resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state": "SUCCESS",
		"resource_type": "inventory.CloudService",
		"match_rules": {"1": ["reference.resource_id", "provider", "cloud_service_type", "cloud_service_group"]},
		"resource": {
			"provider": "aws",
			"cloud_service_group": "Group",
			"cloud_service_type": "Type",
			"reference": {"resource_id": "id-1"},
			"metadata": {"view": {"sub_data": {"layouts": []}}},
			"data": {"name": "w"}
		}
	}`, string(b))
}
