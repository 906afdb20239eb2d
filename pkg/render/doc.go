// Package render groups the output backends for published Reeb graphs.
// The [dot] subpackage produces node-link diagrams via Graphviz.
package render
