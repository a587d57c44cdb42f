/*
NAME
  color.go

DESCRIPTION
  color.go implements the Color Reconstructor: full-range YUV->RGB and
  PD->RGB reconstruction from the pixel buffer's provisional luma and the
  transient chroma planes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

// reconstructYUV converts the provisional grayscale pixels (R=G=B=Y) of a
// Robot 36 decode into full color, using the even line's V-plane and the
// odd line's U-plane shared by both lines of the pair.
func reconstructYUV(d *decodeState) {
	width := d.mode.Width
	for y := 0; y+1 < d.mode.Lines; y += 2 {
		y1 := y + 1
		for x := 0; x < width; x++ {
			v := float64(d.vplane[y*width+x])
			u := float64(d.uplane[y1*width+x])
			applyYUV(d.pixels, width, y, x, u, v)
			applyYUV(d.pixels, width, y1, x, u, v)
		}
	}
}

func applyYUV(pixels []byte, width, y, x int, u, v float64) {
	idx := (y*width + x) * 4
	luma := float64(pixels[idx]) // R currently holds the provisional Y.
	uc, vc := u-128, v-128
	pixels[idx+0] = clampByte(luma + 1.402*vc)
	pixels[idx+1] = clampByte(luma - 0.344136*uc - 0.714136*vc)
	pixels[idx+2] = clampByte(luma + 1.772*uc)
}

// reconstructPD converts the provisional grayscale pixels of a PD120
// decode into full color, using the per-pixel R-Y and B-Y planes.
func reconstructPD(d *decodeState) {
	width := d.mode.Width
	for y := 0; y < d.mode.Lines; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			luma := float64(d.pixels[idx])
			ry := float64(d.vplane[y*width+x]) - 128
			by := float64(d.uplane[y*width+x]) - 128
			d.pixels[idx+0] = clampByte(luma + ry)
			d.pixels[idx+1] = clampByte(luma - 0.194*by - 0.509*ry)
			d.pixels[idx+2] = clampByte(luma + by)
		}
	}
}
