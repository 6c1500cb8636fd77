package coeffs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteFIR writes one tap per line. precision is the number of significant
// digits; -1 writes the shortest representation that reads back exactly.
func WriteFIR(w io.Writer, taps []float64, precision int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, formatBufSize)
	for _, t := range taps {
		buf = strconv.AppendFloat(buf[:0], t, 'g', precision, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing FIR coefficients: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing FIR coefficients: %w", err)
	}
	return nil
}

// WriteBiquads writes one seven-column record per section.
func WriteBiquads(w io.Writer, rows []SOSRow, precision int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, sosFields*formatBufSize)
	for _, r := range rows {
		buf = buf[:0]
		for i, v := range [sosFields]float64{r.InvStageGain, r.B0, r.B1, r.B2, r.A0, r.A1, r.A2} {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'g', precision, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing biquad coefficients: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing biquad coefficients: %w", err)
	}
	return nil
}
