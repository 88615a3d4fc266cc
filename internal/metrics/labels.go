// Package metrics exposes Prometheus collectors for the NervosDAO components.
package metrics

import "github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"

const (
	namespace = "nervosdao"

	statusSuccess = "success"
	statusError   = "error"
	unknownLabel  = "unknown"
)

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

func networkLabel(network model.Network) string {
	if network == "" {
		return unknownLabel
	}
	return string(network)
}
