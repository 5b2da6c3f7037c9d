// pkg/config_loader/format.go

package config_loader

import (
	"fmt"
	"io"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
)

// Write prints every option of s in pwquality.conf syntax, ordered by id.
// Output can be read back with Load.
func Write(w io.Writer, s *pwquality.Settings) error {
	for _, id := range pwquality.AllSettings() {
		var line string
		if id.IsString() {
			v, _, err := s.GetStr(id)
			if err != nil {
				return err
			}
			line = fmt.Sprintf("%s = %s\n", id.ConfName(), v)
		} else {
			v, err := s.GetInt(id)
			if err != nil {
				return err
			}
			line = fmt.Sprintf("%s = %d\n", id.ConfName(), v)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
