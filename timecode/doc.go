// Package timecode converts between absolute frame counts, HH:MM:SS:FF
// timecodes and durations, in integer and NTSC drop frame rates.
//
// A FrameRate carries the nominal rate (29.97), the integer base used to
// count hours, minutes, seconds and frames (30), and the number of frame
// numbers dropped at each minute except every tenth (2). Timecodes wrap
// around a 24 hour window as broadcast timecodes do.
//
//	tc, err := timecode.Parse("01:00:00;00", timecode.FPS2997DF)
//	if err != nil {
//		return err
//	}
//	fmt.Println(tc.TotalFrames(), tc.Add(1800)) // 107892 01:01:00;02
package timecode
