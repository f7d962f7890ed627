package entities

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("World", Label("scope:unit", "layer:sim", "dep:none", "b:world-state"), func() {
	It("orders ids ascending regardless of insertion order", func() {
		w := NewWorld()
		w.Objects[5] = NewPlanet(Body{}, "a")
		w.Objects[1] = NewPlanet(Body{}, "b")
		w.Objects[3] = NewPlanet(Body{}, "c")

		Expect(w.OrderedIDs()).To(Equal([]int{1, 3, 5}))
	})

	It("returns only ships from Ships(), in ascending id order", func() {
		w := NewWorld()
		w.Objects[1] = NewPlanet(Body{}, "sun")
		w.Objects[2] = NewShip(Body{}, Weapon{}, Controller{}, 1, 1)
		w.Objects[3] = NewPellet(Body{}, 1)
		w.Objects[4] = NewShip(Body{}, Weapon{}, Controller{}, 1, 1)

		ships := w.Ships()
		Expect(ships).To(HaveLen(2))
		Expect(ships[0].ID).To(Equal(2))
		Expect(ships[1].ID).To(Equal(4))
	})

	It("counts only live ships", func() {
		w := NewWorld()
		w.Objects[1] = NewPlanet(Body{}, "sun")
		w.Objects[2] = NewShip(Body{}, Weapon{}, Controller{}, 1, 1)
		Expect(w.ShipCount()).To(Equal(1))

		delete(w.Objects, 2)
		Expect(w.ShipCount()).To(Equal(0))
	})

	It("starts with an empty object map", func() {
		w := NewWorld()
		Expect(w.Objects).To(BeEmpty())
	})
})
