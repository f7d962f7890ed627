package entities

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Object variants", Label("scope:unit", "layer:sim", "dep:none", "b:object-model"), func() {
	It("tags a Planet with KindPlanet and exposes its Body", func() {
		body := Body{Radius: 20, Mass: 1000, Position: NewVec2(5, 5)}
		planet := NewPlanet(body, "sol")

		var obj Object = planet
		Expect(obj.Kind()).To(Equal(KindPlanet))
		Expect(obj.BodyPtr().Position).To(Equal(NewVec2(5, 5)))
	})

	It("tags a Ship with KindShip and allows in-place Body mutation through the interface", func() {
		ship := NewShip(Body{Position: NewVec2(1, 1)}, NewWeapon(WeaponParams{}), NewController(Identity{Name: "bot", Version: "v0"}), 10, 1)

		var obj Object = ship
		obj.BodyPtr().Position = NewVec2(9, 9)
		Expect(ship.Body.Position).To(Equal(NewVec2(9, 9)))
	})

	It("tags a Pellet with KindPellet", func() {
		pellet := NewPellet(Body{}, 2.5)
		var obj Object = pellet
		Expect(obj.Kind()).To(Equal(KindPellet))
		Expect(pellet.TimeToLive).To(Equal(float32(2.5)))
	})

	It("reports weapon readiness only when cold and reloaded", func() {
		w := NewWeapon(WeaponParams{MaxTemperature: 3})
		Expect(w.Ready()).To(BeTrue())

		w.Reload = 0.1
		Expect(w.Ready()).To(BeFalse())

		w.Reload = 0
		w.Temperature = 3
		Expect(w.Ready()).To(BeFalse())
	})
})
