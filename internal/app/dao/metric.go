package dao

import (
	"encoding/json"
	"strings"

	"github.com/dalemusser/staffhub/internal/domain/models"
)

// MetricInput is a decoded request to add a merit or demerit.
type MetricInput struct {
	MetricType     models.MetricType
	Comment        string
	Commenter      string
	CommenterEmail *string
}

// DecodeMetricInput parses and checks a metric body. Commenter may be left
// blank; the caller fills it with the acting identity.
func DecodeMetricInput(data []byte) (MetricInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return MetricInput{}, invalidField("body", "must be a JSON object")
	}

	s, _ := jsonString(raw["metric_type"])
	mt, ok := models.ParseMetricType(s)
	if !ok {
		return MetricInput{}, invalidField("metric_type", `must be "merit" or "demerit"`)
	}
	comment := coerceText(raw["comment"])
	if comment == nil {
		return MetricInput{}, invalidField("comment", "is required")
	}

	in := MetricInput{
		MetricType:     mt,
		Comment:        *comment,
		CommenterEmail: coerceText(raw["commenter_email"]),
	}
	if c := coerceText(raw["commenter"]); c != nil {
		in.Commenter = strings.TrimSpace(*c)
	}
	return in, nil
}

// MetricClient is the JSON shape of a metric.
type MetricClient struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	MetricType     models.MetricType `json:"metric_type"`
	Comment        string            `json:"comment"`
	Commenter      string            `json:"commenter"`
	CommenterEmail *string           `json:"commenter_email"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// MetricToClient maps a stored metric for transport.
func MetricToClient(m models.Metric) MetricClient {
	return MetricClient{
		ID:             m.ID.Hex(),
		UserID:         m.UserID.Hex(),
		MetricType:     m.MetricType,
		Comment:        m.Comment,
		Commenter:      m.Commenter,
		CommenterEmail: m.CommenterEmail,
		CreatedAt:      FormatISO(m.CreatedAt),
		UpdatedAt:      FormatISO(m.UpdatedAt),
	}
}

// MetricsToClient maps a slice of stored metrics.
func MetricsToClient(ms []models.Metric) []MetricClient {
	out := make([]MetricClient, 0, len(ms))
	for _, m := range ms {
		out = append(out, MetricToClient(m))
	}
	return out
}
