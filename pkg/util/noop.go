package util

import "github.com/influxdata/influxdb-client-go/api/write"

// NoopWriteAPI satisfies the InfluxDB write API when metrics are
// disabled, so callers never have to nil-check before writing points.
type NoopWriteAPI struct{}

func (n *NoopWriteAPI) WriteRecord(line string) {}

func (n *NoopWriteAPI) WritePoint(p *write.Point) {}

func (n *NoopWriteAPI) Flush() {}

func (n *NoopWriteAPI) Close() {}

func (n *NoopWriteAPI) Errors() <-chan error { return nil }
