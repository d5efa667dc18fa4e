package tools

import (
	"strconv"
	"time"

	"github.com/baalimago/plai/internal/models"
)

type DateTool models.Specification

var Date = DateTool{
	Name:        "date",
	Description: "Get the current date and time. Defaults to RFC1123 in local time.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: make([]string, 0),
		Properties: map[string]models.ParameterObject{
			"utc": {
				Type:        "boolean",
				Description: "If true, returns time in UTC.",
			},
			"rfc3339": {
				Type:        "boolean",
				Description: "If true, returns time in RFC3339 format (e.g. 2006-01-02T15:04:05Z07:00).",
			},
			"unix": {
				Type:        "boolean",
				Description: "If true, returns the current Unix timestamp in seconds. Overrides 'rfc3339' if both are set.",
			},
		},
	},
}

func (d DateTool) Call(input models.Input) (string, error) {
	t := time.Now()
	if v, ok := input["utc"].(bool); ok && v {
		t = t.UTC()
	}
	if v, ok := input["unix"].(bool); ok && v {
		return strconv.FormatInt(t.Unix(), 10), nil
	}
	if v, ok := input["rfc3339"].(bool); ok && v {
		return t.Format(time.RFC3339), nil
	}
	return t.Format(time.RFC1123), nil
}

func (d DateTool) Specification() models.Specification {
	return models.Specification(Date)
}
