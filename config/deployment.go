package config

import (
	"fmt"
	"path/filepath"

	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/helper"
)

// Deployment holds every value resolved at deployment time.
// The errorTxt tags are the CLI flag names so validation errors tell the user which flag to set.
type Deployment struct {
	ImporterHandler      string `json:"importerHandler" yaml:"importerHandler" errorTxt:"importer-handler" mandatory:"yes"`
	ExporterHandler      string `json:"exporterHandler" yaml:"exporterHandler" errorTxt:"exporter-handler" mandatory:"yes"`
	QueryFileKey         string `json:"queryFileKey" yaml:"queryFileKey" errorTxt:"query-file-key" mandatory:"yes"`
	SecretName           string `json:"secretName" yaml:"secretName" errorTxt:"secret-name" mandatory:"yes"`
	OutputBucket         string `json:"outputBucket" yaml:"outputBucket" errorTxt:"output-bucket" mandatory:"yes"`
	OutputPrefix         string `json:"outputPrefix" yaml:"outputPrefix" errorTxt:"output-prefix" mandatory:"yes"`
	SnowflakeWorkspaceID string `json:"snowflakeWorkspaceId" yaml:"snowflakeWorkspaceId" errorTxt:"workspace-id" mandatory:"yes"`
	ComponentTypeID      string `json:"componentTypeId" yaml:"componentTypeId" errorTxt:"component-type-id" mandatory:"yes"`
	AssetRoot            string `json:"assetRoot" yaml:"assetRoot"`
	Region               string `json:"region,omitempty" yaml:"region,omitempty"`
	ProjectName          string `json:"projectName" yaml:"projectName"`
	StackName            string `json:"stackName" yaml:"stackName"`
}

// Validate fails fast, listing every mandatory value that is missing.
func (d *Deployment) Validate() error {
	if err := helper.ValidateStructIsPopulated(d); err != nil {
		return fmt.Errorf("invalid deployment configuration: %w", err)
	}
	return nil
}

// ApplyDefaults fills the optional values that have defaults.
func (d *Deployment) ApplyDefaults() {
	if d.AssetRoot == "" {
		d.AssetRoot = constants.DefaultAssetRoot
	}
	if d.ProjectName == "" {
		d.ProjectName = constants.AppName
	}
	if d.StackName == "" {
		d.StackName = constants.DefaultStackName
	}
}

// LayerAssetPath is the directory holding the pre-built dependency bundle.
func (d Deployment) LayerAssetPath() string {
	return filepath.Join(d.assetRoot(), constants.LayerAssetDir)
}

// LambdaAssetPath is the directory holding the exporter and importer handler code.
func (d Deployment) LambdaAssetPath() string {
	return filepath.Join(d.assetRoot(), constants.LambdaAssetDir)
}

func (d Deployment) assetRoot() string {
	if d.AssetRoot == "" {
		return constants.DefaultAssetRoot
	}
	return d.AssetRoot
}
