package api

import "time"

type ContributingFactor struct {
	Factor  string    `json:"factor"`
	AddedAt time.Time `json:"addedAt"`
}

type AffectedResource struct {
	ResourceID string    `json:"resourceId"`
	AddedAt    time.Time `json:"addedAt"`
}

// CostAnomaly is the serialized anomaly record. DeviationAmount and
// DeviationPercentage are computed and cached at serialization time.
type CostAnomaly struct {
	AnomalyID           string               `json:"anomalyId"`
	ServiceType         string               `json:"serviceType"`
	AnomalyType         string               `json:"anomalyType"`
	Region              string               `json:"region"`
	Severity            string               `json:"severity"`
	BaselineCost        float64              `json:"baselineCost"`
	ActualCost          float64              `json:"actualCost"`
	DeviationAmount     float64              `json:"deviationAmount"`
	DeviationPercentage float64              `json:"deviationPercentage"`
	AnalysisConfidence  float64              `json:"analysisConfidence"`
	Resolved            bool                 `json:"resolved"`
	ResolvedAt          *time.Time           `json:"resolvedAt,omitempty"`
	ResolvedBy          string               `json:"resolvedBy,omitempty"`
	ResolutionNotes     string               `json:"resolutionNotes,omitempty"`
	AlertSent           bool                 `json:"alertSent"`
	AlertSentAt         *time.Time           `json:"alertSentAt,omitempty"`
	AlertChannels       []string             `json:"alertChannels"`
	ContributingFactors []ContributingFactor `json:"contributingFactors"`
	AffectedResources   []AffectedResource   `json:"affectedResources"`
	Timestamp           time.Time            `json:"timestamp"`
}

// CostAnomalyInput is a partial detection report; absent fields take their
// defaults, and severity is classified from the deviation when omitted.
type CostAnomalyInput struct {
	AnomalyID           string   `json:"anomalyId"`
	ServiceType         string   `json:"serviceType"`
	AnomalyType         string   `json:"anomalyType"`
	Region              string   `json:"region"`
	Severity            string   `json:"severity"`
	BaselineCost        *float64 `json:"baselineCost"`
	ActualCost          *float64 `json:"actualCost"`
	AnalysisConfidence  *float64 `json:"analysisConfidence"`
	ContributingFactors []string `json:"contributingFactors"`
	AffectedResources   []string `json:"affectedResources"`
}

type ResolutionRequest struct {
	ResolvedBy string `json:"resolvedBy"`
	Notes      string `json:"notes"`
}

type AlertRequest struct {
	Channels []string `json:"channels"`
}

type FactorRequest struct {
	Factor string `json:"factor"`
}

type AffectedResourceRequest struct {
	ResourceID string `json:"resourceId"`
}
