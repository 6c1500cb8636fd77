package driver

import "strconv"

func formatPair(re, im float64) string {
	return strconv.FormatFloat(re, 'g', -1, 64) + "," + strconv.FormatFloat(im, 'g', -1, 64) + "\n"
}
