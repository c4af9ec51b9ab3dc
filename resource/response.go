package resource

// Response is consumed by emitters that do not care about the concrete resource type
type Response interface {
	Resource() Resource
}

// MatchRules tells the inventory how to find an existing record for a resource
type MatchRules map[string][]string

// DefaultMatchRules matches on the provider reference id first
func DefaultMatchRules() MatchRules {
	return MatchRules{
		"1": {"reference.resource_id", "provider", "cloud_service_type", "cloud_service_group"},
	}
}

// CloudServiceResponse is embedded by every concrete response
type CloudServiceResponse struct {
	State        string     `json:"state"`
	ResourceType string     `json:"resource_type"`
	MatchRules   MatchRules `json:"match_rules"`
	Payload      Resource   `json:"resource"`
}

// NewCloudServiceResponse wraps r in a successful response
func NewCloudServiceResponse(r Resource) CloudServiceResponse {
	return CloudServiceResponse{
		State:        StateSuccess,
		ResourceType: ResourceTypeCloudService,
		MatchRules:   DefaultMatchRules(),
		Payload:      r,
	}
}

func (r *CloudServiceResponse) Resource() Resource { return r.Payload }
