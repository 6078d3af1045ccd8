package truss

import (
	"fmt"
	"io"
	"os"

	"github.com/notargets/MSATruss/partitions"
)

// DefaultMaxCondition is the largest accepted condition estimate of K_bb
const DefaultMaxCondition = 1e12

type Config struct {
	MaxCondition  float64                      // Reject K_bb when its condition estimate exceeds this
	Workers       int                          // Concurrent element-stiffness workers; <= 1 is serial
	PartitionSize int                          // Elements per worker; when > 0 it sets the worker count instead of Workers
	Strategy      partitions.PartitionStrategy // How elements are split across workers
	Verbose       bool                         // Print progress lines to Output
	Output        io.Writer                    // Defaults to os.Stdout
}

// DefaultConfig returns a serial configuration with the default conditioning limit
func DefaultConfig() Config {
	return Config{
		MaxCondition: DefaultMaxCondition,
		Workers:      1,
		Strategy:     partitions.BlockPartition,
		Output:       os.Stdout,
	}
}

// withDefaults fills zero fields and rejects values that cannot work
func (c Config) withDefaults() (Config, error) {
	def := DefaultConfig()
	if c.MaxCondition == 0 {
		c.MaxCondition = def.MaxCondition
	}
	if !(c.MaxCondition > 1) {
		return c, fmt.Errorf("truss: MaxCondition must be > 1, got %g", c.MaxCondition)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.PartitionSize < 0 {
		return c, fmt.Errorf("truss: PartitionSize must be >= 0, got %d", c.PartitionSize)
	}
	if c.Output == nil {
		c.Output = def.Output
	}
	return c, nil
}

// partitionBuilder returns the element partitioner for ne elements
func (c Config) partitionBuilder(ne int) *partitions.PartitionBuilder {
	pb := &partitions.PartitionBuilder{
		NumElements: ne,
		Strategy:    c.Strategy,
	}
	if c.PartitionSize > 0 {
		pb.TargetPartitionSize = c.PartitionSize
	} else {
		pb.NumPartitions = c.Workers
	}
	return pb
}

func (c Config) logf(format string, args ...interface{}) {
	if c.Verbose {
		fmt.Fprintf(c.Output, format, args...)
	}
}
