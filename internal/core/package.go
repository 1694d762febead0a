package core

// Package is a namespaced unit of model metadata. Its identity is NsURI.
// Subpackages may be shared between parents.
type Package struct {
	Name        string     `json:"name" yaml:"name"`
	NsURI       string     `json:"nsURI" yaml:"nsURI"`
	NsPrefix    string     `json:"nsPrefix,omitempty" yaml:"nsPrefix,omitempty"`
	Subpackages []*Package `json:"subpackages,omitempty" yaml:"subpackages,omitempty"`
}

// Project is a logical project name bound to its physical root.
type Project struct {
	Name     string   `json:"name" yaml:"name"`
	Location Location `json:"location" yaml:"location"`
}
