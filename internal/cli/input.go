package cli

import (
	"io"
	"os"
)

// readBatchInput reads the JSON batch from inputPath if set, else from
// stdin. It reports whether an explicit --input file was used, for the
// usage log's used_input_file_flag.
func readBatchInput(stdin io.Reader, inputPath string) (data []byte, usedInputFile bool, err error) {
	if inputPath != "" {
		data, err = os.ReadFile(inputPath)
		return data, true, err
	}
	data, err = io.ReadAll(stdin)
	return data, false, err
}
