package vision_test

import (
	"fmt"

	"wonderlens/internal/pkg/vision"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LensMenu", func() {
	It("offers fourteen distinct lenses", func() {
		Expect(vision.LensMenu).To(HaveLen(14))

		seen := map[string]bool{}
		for _, lens := range vision.LensMenu {
			Expect(seen[lens]).To(BeFalse(), "duplicate lens %q", lens)
			seen[lens] = true
		}
	})

	It("contains the mandatory and conditional lenses", func() {
		Expect(vision.LensMenu).To(ContainElements("Core Identity", "Safety & Care", "Ecosystem Role"))
	})
})

var _ = Describe("BuildAnalyzePrompt", func() {
	It("lists the whole menu and spells out the selection rules", func() {
		prompt := vision.BuildAnalyzePrompt(8)

		for _, lens := range vision.LensMenu {
			Expect(prompt).To(ContainSubstring(lens))
		}
		Expect(prompt).To(ContainSubstring("exactly 5 lenses"))
		Expect(prompt).To(ContainSubstring(`"Core Identity" is always one of the 5`))
	})

	It("carries the safety gate with the exact sentinel payload", func() {
		prompt := vision.BuildAnalyzePrompt(8)

		Expect(prompt).To(ContainSubstring(
			fmt.Sprintf(`{"object":"%s","message":"%s"}`, vision.SentinelObject, vision.SentinelMessage)))
	})

	It("tunes the reading level to the stated age", func() {
		Expect(vision.BuildAnalyzePrompt(6)).To(ContainSubstring("The child is 6 years old"))
		Expect(vision.BuildAnalyzePrompt(10)).To(ContainSubstring("The child is 10 years old"))
	})
})

var _ = Describe("BuildNewsPrompt", func() {
	It("targets the band and the country", func() {
		prompt := vision.BuildNewsPrompt("fr", "8-9")
		Expect(prompt).To(ContainSubstring("aged 8-9"))
		Expect(prompt).To(ContainSubstring(`"FR"`))
	})

	It("treats global as worldwide content", func() {
		Expect(vision.BuildNewsPrompt("global", "6-7")).To(ContainSubstring("around the world"))
	})
})

var _ = Describe("BuildQuizPrompt", func() {
	It("pins the category into the instruction and the schema", func() {
		prompt := vision.BuildQuizPrompt("Space", "10")
		Expect(prompt).To(ContainSubstring(`"Space"`))
		Expect(prompt).To(ContainSubstring("aged 10"))
	})
})
