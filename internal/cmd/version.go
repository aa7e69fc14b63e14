package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Alia5/resxext/internal/codegen/common"
)

type Version struct {
	out io.Writer
}

func (c *Version) Run() error {
	v, err := common.GetVersion()
	if err != nil {
		return err
	}
	w := c.out
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintf(w, "resxext %s (%s, %s/%s)\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
