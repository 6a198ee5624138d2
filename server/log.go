// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"os"
)

// AppendLog appends one CSV row to filename. Floats get 2 decimal places.
func AppendLog(filename string, fields ...interface{}) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	fieldStrings := make([]string, len(fields))
	for i, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			fieldStrings[i] = fmt.Sprintf("%.2f", v)
		default:
			fieldStrings[i] = fmt.Sprint(v)
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(fieldStrings); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
