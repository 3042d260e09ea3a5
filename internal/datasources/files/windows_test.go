package files

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWindows(t *testing.T) {
	data := "Window\tTrain Start\tTest Start\tTest End\n" +
		"1\t2012-04-01 00:00:00\t2012-04-10 00:00:00\t2012-04-14 00:00:00\n" +
		"2\t2012-04-14\t2012-04-23 00:00:00.000\t2012-04-27 00:00:00\n"

	windows, err := ReadWindows(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, 1, windows[0].ID)
	assert.Equal(t, time.Date(2012, 4, 10, 0, 0, 0, 0, time.UTC), windows[0].TrainStopTestStart)
	assert.Equal(t, time.Date(2012, 4, 14, 0, 0, 0, 0, time.UTC), windows[1].TrainStart)
	assert.Equal(t, time.Date(2012, 4, 23, 0, 0, 0, 0, time.UTC), windows[1].TrainStopTestStart)
	assert.Equal(t, time.Date(2012, 4, 27, 0, 0, 0, 0, time.UTC), windows[1].TestStop)
}

func TestReadWindows_BadDate(t *testing.T) {
	_, err := ReadWindows(strings.NewReader("header\n1\t2012-04-01\tlater\t2012-04-14\n"))
	assert.ErrorContains(t, err, "later")
}
