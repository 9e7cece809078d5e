/*
Package observability provides the Prometheus metrics figspec transports record.

Each Metrics value owns its registry, so several servers (or tests) can run in
one process without colliding on the default registerer.
*/
package observability
