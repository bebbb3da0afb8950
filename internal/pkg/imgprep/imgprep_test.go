package imgprep_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"

	"wonderlens/internal/pkg/imgprep"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// photoLike builds a smooth gradient frame, which compresses the way a
// typical photo does.
func photoLike(width, height int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}

	buf := new(bytes.Buffer)
	Expect(jpeg.Encode(buf, img, &jpeg.Options{Quality: 95})).To(Succeed())
	return buf.Bytes()
}

// noisy builds per-pixel random noise, the worst case for JPEG.
func noisy(width, height int) []byte {
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	buf := new(bytes.Buffer)
	Expect(jpeg.Encode(buf, img, &jpeg.Options{Quality: 95})).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Compress", func() {
	It("brings a large photo-like image under the target", func() {
		source := photoLike(2400, 1800)

		result, err := imgprep.Compress(source)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(result.Data)).To(BeNumerically("<=", imgprep.TargetBytes))
		Expect(result.Width).To(BeNumerically("<=", imgprep.MaxDimension))
		Expect(result.Height).To(BeNumerically("<=", imgprep.MaxDimension))
	})

	It("preserves the aspect ratio when downscaling", func() {
		result, err := imgprep.Compress(photoLike(2000, 1000))
		Expect(err).NotTo(HaveOccurred())

		ratio := float64(result.Width) / float64(result.Height)
		Expect(ratio).To(BeNumerically("~", 2.0, 0.05))
	})

	It("leaves small images at their original dimensions", func() {
		result, err := imgprep.Compress(photoLike(320, 240))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Width).To(Equal(320))
		Expect(result.Height).To(Equal(240))
		Expect(len(result.Data)).To(BeNumerically("<=", imgprep.TargetBytes))
	})

	It("still shrinks worst-case noise even if the target is missed", func() {
		source := noisy(1600, 1200)

		result, err := imgprep.Compress(source)
		Expect(err).NotTo(HaveOccurred())
		// Noise defeats JPEG; the algorithm is explicitly best effort here.
		Expect(len(result.Data)).To(BeNumerically("<", len(source)))
		Expect(result.Width).To(BeNumerically("<=", imgprep.MaxDimension))
	})

	It("rejects bytes that are not an image", func() {
		_, err := imgprep.Compress([]byte("definitely not a jpeg"))
		Expect(err).To(HaveOccurred())
	})
})
