// internal/writers/runinfo.go
package writers

import (
	"fmt"
	"io"

	"vkbridge-core/karst"
	"vkbridge-core/karstfmt"

	"vkbridge/internal/jsonutil"
	"vkbridge/pkg/api"
)

// WriteRunInfo emits the Visual KARSYS import document: a "# Run info"
// block holding run metadata and the effective configuration as pretty
// JSON, then a "# Data" block holding the network.
func WriteRunInfo(w io.Writer, info api.RunInfoV1, net *karst.Network) error {
	if _, err := fmt.Fprintln(w, "# Run info"); err != nil {
		return err
	}
	if err := jsonutil.EncodePretty(w, info); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "# Data"); err != nil {
		return err
	}
	return karstfmt.WriteNetwork(w, net)
}
