// Package pipeline describes the Snowflake to IoT TwinMaker sync connector as a graph of resource
// descriptors: one shared access role and policy, one dependency layer, the exporter and importer
// functions, a fixed two step workflow and the hourly schedule rule that starts it.
//
// Nothing here talks to a cloud provider. Package stack turns a Plan into declared resources.
package pipeline
