package pets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimals(t *testing.T) {
	fido := NewDog("Fido", 3, "Golden Retriever")
	whiskers := NewCat("Whiskers", 2, "Tabby")

	assert.Equal(t, "Woof!", fido.MakeSound())
	assert.Equal(t, "Meow!", whiskers.MakeSound())
	assert.Equal(t, "...", NewAnimal("Generic", 1).MakeSound())
	assert.Equal(t, "Fido, 3 years old", fido.Describe())
	assert.Equal(t, "Fido fetched the ball!", fido.Fetch("ball"))
	assert.Equal(t, "Whiskers is purring...", whiskers.Purr())
}

func TestOwnerAndVet(t *testing.T) {
	sarah := NewOwner("Sarah")
	assert.Equal(t, "Sarah has no pets", sarah.ListPets())

	whiskers := NewCat("Whiskers", 2, "Tabby")
	mittens := NewCat("Mittens", 4, "Calico")
	assert.Equal(t, "Sarah now owns Whiskers", sarah.AddPet(whiskers))
	sarah.AddPet(mittens)
	assert.Equal(t, "Sarah owns: Whiskers, Mittens", sarah.ListPets())

	vet := NewVeterinarian("Smith", "General")
	assert.Equal(t, "Dr. Smith treated Whiskers", vet.Treat(whiskers))
	vet.Treat(whiskers)
	vet.Treat(mittens)
	assert.Equal(t, 2, vet.PatientCount())
}

func TestPetShop(t *testing.T) {
	shop := NewPetShop("Pet Palace")
	vet := NewVeterinarian("Smith", "General")
	assert.Equal(t, "Smith now works at Pet Palace", shop.HireVeterinarian(vet))
	assert.Same(t, vet, shop.Veterinarian())

	rex := NewDog("Rex", 1, "Beagle")
	john := NewOwner("John")
	assert.Equal(t, "Rex is not available for sale", shop.SellPet(rex, john))

	shop.AddAnimal(rex)
	assert.Equal(t, "John bought Rex from Pet Palace", shop.SellPet(rex, john))
	assert.Equal(t, []Pet{rex}, john.Pets())
	assert.Equal(t, "Rex is not available for sale", shop.SellPet(rex, john))
}
