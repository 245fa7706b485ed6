package main

// Request DTOs. Keep them minimal and explicit. Image fields accept either
// a data URI or bare base64.

type identifyReq struct {
	Image string `json:"image"`
}

type diagnoseReq struct {
	Image   string `json:"image"`
	PlantID string `json:"plantId,omitempty"`
}

type adviceReq struct {
	PlantID     string `json:"plantId"`
	Environment string `json:"environment,omitempty"`
}

type seasonalGuideReq struct {
	Location string `json:"location,omitempty"`
	Season   string `json:"season,omitempty"`
}

type optimizedScheduleReq struct {
	Availability string `json:"availability,omitempty"`
}

type insightsReq struct {
	PlantID string `json:"plantId,omitempty"`
	Topic   string `json:"topic,omitempty"`
}

type askReq struct {
	PlantID  string `json:"plantId,omitempty"`
	Question string `json:"question"`
}

type growthReq struct {
	PlantID string   `json:"plantId"`
	Images  []string `json:"images"` // at least two, oldest first
}

type verifyIdentityReq struct {
	Image                  string `json:"image"`
	ExpectedName           string `json:"expectedName"`
	ExpectedScientificName string `json:"expectedScientificName,omitempty"`
}
