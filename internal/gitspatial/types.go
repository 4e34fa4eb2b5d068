package gitspatial

import (
	"fmt"
	"strconv"
)

// Kind is the class of a syncable resource.
type Kind string

const (
	KindRepo       Kind = "repo"
	KindFeatureSet Kind = "feature_set"
)

// ParseKind accepts the wire name or a few friendly aliases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "repo", "repos", "repository":
		return KindRepo, nil
	case "feature_set", "feature-set", "featureset", "fs":
		return KindFeatureSet, nil
	default:
		return "", fmt.Errorf("unknown resource kind %q (want repo or feature_set)", s)
	}
}

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindRepo:
		return "Repo"
	case KindFeatureSet:
		return "Feature Set"
	default:
		return string(k)
	}
}

// Ref identifies one syncable resource. It is stable for the lifetime of the
// controller bound to it and is used as the arena key.
type Ref struct {
	Kind Kind
	ID   int
}

// Path returns the resource path, e.g. /user/repo/42.
func (r Ref) Path() string {
	return "/user/" + string(r.Kind) + "/" + strconv.Itoa(r.ID)
}

// StatusPath returns the status endpoint path for the resource.
func (r Ref) StatusPath() string {
	return r.Path() + "/sync_status"
}

func (r Ref) String() string {
	return string(r.Kind) + "/" + strconv.Itoa(r.ID)
}

// statusResponse is the body of GET .../sync_status.
type statusResponse struct {
	Status string `json:"status"`
}

// errorResponse is the body the server returns when it rejects a request.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
