package datarecording_test

import (
	"github.com/sarchlab/odegen/datarecording"
	"github.com/sarchlab/odegen/driver"
)

var _ driver.Hook = (*datarecording.RunRecorder)(nil)
