// Package infra contains technical adapters: the MQTT schedule publisher,
// metrics exporters, run stores and the Redis result cache. These packages
// should depend only on the interfaces defined in the core packages.
package infra
