package domain

import (
	"encoding/json"
	"errors"
	"maps"
)

// CatalogRecordComponent is the component whose content is the canonical
// metadata of an entity.
const CatalogRecordComponent = "catalog_record"

// MaxEntitiesPerRequest bounds how many PIs one entity or OCR request may name.
const MaxEntitiesPerRequest = 10

// Manifest describes one entity's current state.
type Manifest struct {
	PI          string `json:"pi" mapstructure:"pi"`
	Version     int    `json:"ver" mapstructure:"ver"`
	Timestamp   string `json:"ts" mapstructure:"ts"`
	ManifestCID string `json:"manifest_cid" mapstructure:"manifest_cid"`

	// PrevCID links to the previous version; the history chain is not walked.
	PrevCID string `json:"prev_cid,omitempty" mapstructure:"prev_cid"`

	// Components maps component name to content identifier.
	Components map[string]string `json:"components" mapstructure:"components"`

	ChildrenPI []string `json:"children_pi,omitempty" mapstructure:"children_pi"`
	ParentPI   string   `json:"parent_pi,omitempty" mapstructure:"parent_pi"`
	Note       string   `json:"note,omitempty" mapstructure:"note"`

	// Raw is the object the gateway sent, unknown keys included. The typed
	// fields above are a view over it. When set, Raw is what gets marshalled.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

type plainManifest Manifest

// MarshalJSON writes Raw when present, otherwise the typed fields.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if m.Raw != nil {
		return json.Marshal(m.Raw)
	}
	return json.Marshal(plainManifest(m))
}

// fields returns the manifest as a generic object the caller may extend.
func (m Manifest) fields() map[string]any {
	if m.Raw != nil {
		return maps.Clone(m.Raw)
	}
	out := map[string]any{
		"pi":           m.PI,
		"ver":          m.Version,
		"ts":           m.Timestamp,
		"manifest_cid": m.ManifestCID,
		"components":   m.Components,
	}
	if m.PrevCID != "" {
		out["prev_cid"] = m.PrevCID
	}
	if len(m.ChildrenPI) > 0 {
		out["children_pi"] = m.ChildrenPI
	}
	if m.ParentPI != "" {
		out["parent_pi"] = m.ParentPI
	}
	if m.Note != "" {
		out["note"] = m.Note
	}
	return out
}

// ManifestResponse is what the entity gateway returns for one PI:
// the manifest plus, optionally, an already-resolved catalog record.
type ManifestResponse struct {
	Manifest

	Metadata    any    `json:"metadata,omitempty"`
	MetadataCID string `json:"metadata_cid,omitempty"`
}

// MarshalJSON flattens the manifest and the resolved record into one object.
func (r ManifestResponse) MarshalJSON() ([]byte, error) {
	out := r.fields()
	if r.Metadata != nil {
		out["metadata"] = r.Metadata
	}
	if r.MetadataCID != "" {
		out["metadata_cid"] = r.MetadataCID
	}
	return json.Marshal(out)
}

// ComponentStatus tags the variant held by a ComponentResult.
type ComponentStatus int

const (
	// ComponentOK means the component content was fetched and parsed.
	ComponentOK ComponentStatus = iota

	// ComponentFailed means the fetch failed; Err describes why.
	ComponentFailed
)

// ComponentResult is the outcome of fetching one named component:
// either Ok(Value) or Failed(Err).
type ComponentResult struct {
	Status ComponentStatus
	Value  any
	Err    *ComponentFetchError
}

// ComponentValue builds a successful ComponentResult.
func ComponentValue(v any) ComponentResult {
	return ComponentResult{Status: ComponentOK, Value: v}
}

// ComponentFailure builds a failed ComponentResult.
func ComponentFailure(err *ComponentFetchError) ComponentResult {
	return ComponentResult{Status: ComponentFailed, Err: err}
}

// Failed reports whether the component could not be fetched.
func (c ComponentResult) Failed() bool {
	return c.Status == ComponentFailed
}

// MarshalJSON renders the parsed value for Ok and an error marker object
// for Failed.
func (c ComponentResult) MarshalJSON() ([]byte, error) {
	if c.Status == ComponentOK {
		return json.Marshal(c.Value)
	}
	marker := map[string]string{"error": "component fetch failed"}
	if c.Err != nil {
		marker["cid"] = c.Err.ContentID
		if c.Err.Err != nil {
			marker["error"] = c.Err.Err.Error()
		}
	}
	return json.Marshal(marker)
}

// ErrorMessage returns the failure detail, or "" for Ok results.
func (c ComponentResult) ErrorMessage() string {
	if c.Status == ComponentOK {
		return ""
	}
	if c.Err == nil || c.Err.Err == nil {
		return "component fetch failed"
	}
	return c.Err.Err.Error()
}

// ResolvedEntity is a Manifest plus all of its fetched component data.
// Every key of Manifest.Components appears in ComponentData once resolution
// completes.
type ResolvedEntity struct {
	Manifest

	// CanonicalMetadata is the parsed catalog record.
	CanonicalMetadata any `json:"metadata,omitempty"`

	// CanonicalMetadataCID is the content id CanonicalMetadata came from.
	CanonicalMetadataCID string `json:"metadata_cid,omitempty"`

	// ComponentData maps component name to its fetch outcome.
	ComponentData map[string]ComponentResult `json:"component_data"`
}

// MarshalJSON writes the manifest as received followed by the resolved
// catalog record and every component outcome.
func (e ResolvedEntity) MarshalJSON() ([]byte, error) {
	out := e.fields()
	if e.CanonicalMetadata != nil {
		out["metadata"] = e.CanonicalMetadata
	}
	if e.CanonicalMetadataCID != "" {
		out["metadata_cid"] = e.CanonicalMetadataCID
	}
	components := e.ComponentData
	if components == nil {
		components = map[string]ComponentResult{}
	}
	out["component_data"] = components
	return json.Marshal(out)
}

// FailedComponents returns the names of components that failed to fetch.
func (e *ResolvedEntity) FailedComponents() []string {
	var names []string
	for name, res := range e.ComponentData {
		if res.Failed() {
			names = append(names, name)
		}
	}
	return names
}

// ComponentError returns the fetch error for name, if that component failed.
func (e *ResolvedEntity) ComponentError(name string) error {
	res, ok := e.ComponentData[name]
	if !ok || !res.Failed() {
		return nil
	}
	if res.Err == nil {
		return errors.New("component fetch failed")
	}
	return res.Err
}
