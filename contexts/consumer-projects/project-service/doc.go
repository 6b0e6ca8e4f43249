// Package projectservice owns consumer renovation projects for Renopick.
//
// The module owns the projects and project_photos tables and exposes HTTP
// command/query handlers plus the SLA watcher worker entrypoint.
package projectservice
