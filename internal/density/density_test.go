package density_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/remc/internal/density"
	"github.com/san-kum/remc/internal/mc"
)

const log2Pi = 1.8378770664093453

var _ = Describe("Normal", func() {
	It("evaluates the log-probability of a standard normal", func() {
		n, err := density.NewNormal(0, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(n.LogProb(mc.Vector{0})).To(BeNumerically("~", -0.5*log2Pi, 1e-12))
		Expect(n.LogProb(mc.Vector{1})).To(BeNumerically("~", -0.5-0.5*log2Pi, 1e-12))
	})

	It("sums the log-probability over coordinates", func() {
		n, err := density.NewNormal(0, 1)
		Expect(err).NotTo(HaveOccurred())

		lp1 := n.LogProb(mc.Vector{0.7})
		lp2 := n.LogProb(mc.Vector{0.7, 0.7})
		Expect(lp2).To(BeNumerically("~", 2*lp1, 1e-12))
	})

	It("accounts for mean and scale", func() {
		n, err := density.NewNormal(3, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(n.LogProb(mc.Vector{3})).To(BeNumerically("~", -math.Log(2)-0.5*log2Pi, 1e-12))
	})

	It("computes the gradient of the negative log-probability", func() {
		n, err := density.NewNormal(1, 2)
		Expect(err).NotTo(HaveOccurred())

		g := n.Gradient(mc.Vector{5})
		Expect(g).To(HaveLen(1))
		Expect(g[0]).To(BeNumerically("~", (5.0-1.0)/4.0, 1e-12))
	})

	It("rejects non-positive sigma", func() {
		_, err := density.NewNormal(0, 0)
		Expect(err).To(HaveOccurred())

		_, err = density.NewNormal(0, -1)
		Expect(err).To(HaveOccurred())

		n, err := density.NewNormal(0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(n.SetSigma(-2)).To(HaveOccurred())
		Expect(n.Sigma()).To(Equal(1.0))
	})
})

var _ = Describe("MultivariateGaussian", func() {
	It("matches a product of one-dimensional normals", func() {
		g, err := density.NewMultivariateGaussian(mc.Vector{0, 1}, mc.Vector{1, 2})
		Expect(err).NotTo(HaveOccurred())

		n1, _ := density.NewNormal(0, 1)
		n2, _ := density.NewNormal(1, 2)

		x := mc.Vector{0.3, -0.8}
		want := n1.LogProb(mc.Vector{x[0]}) + n2.LogProb(mc.Vector{x[1]})
		Expect(g.LogProb(x)).To(BeNumerically("~", want, 1e-12))
	})

	It("rejects mismatched dimensions and bad scales", func() {
		_, err := density.NewMultivariateGaussian(mc.Vector{0}, mc.Vector{1, 2})
		Expect(err).To(HaveOccurred())

		_, err = density.NewMultivariateGaussian(mc.Vector{0, 0}, mc.Vector{1, 0})
		Expect(err).To(HaveOccurred())
	})

	It("computes per-coordinate gradients", func() {
		g, err := density.NewMultivariateGaussian(mc.Vector{0, 0}, mc.Vector{1, 2})
		Expect(err).NotTo(HaveOccurred())

		grad := g.Gradient(mc.Vector{2, 2})
		Expect(grad[0]).To(BeNumerically("~", 2.0, 1e-12))
		Expect(grad[1]).To(BeNumerically("~", 0.5, 1e-12))
	})
})
