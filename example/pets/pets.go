// Package pets is a small domain used to demonstrate class and instance
// diagrams.
package pets

import (
	"fmt"
	"strings"
)

// Pet is anything an owner can keep and a veterinarian can treat.
type Pet interface {
	Name() string
	MakeSound() string
	Describe() string
}

// Animal is the base type for all animals.
type Animal struct {
	name string
	age  int
}

func NewAnimal(name string, age int) *Animal {
	return &Animal{name: name, age: age}
}

func (a *Animal) Name() string { return a.name }

func (a *Animal) Age() int { return a.age }

// MakeSound makes a generic animal sound.
func (a *Animal) MakeSound() string { return "..." }

func (a *Animal) Describe() string {
	return fmt.Sprintf("%s, %d years old", a.name, a.age)
}

// Dog is a type of animal.
type Dog struct {
	Animal
	breed string
}

func NewDog(name string, age int, breed string) *Dog {
	return &Dog{Animal: Animal{name: name, age: age}, breed: breed}
}

func (d *Dog) Breed() string { return d.breed }

func (d *Dog) MakeSound() string { return "Woof!" }

// Fetch returns what the dog brought back.
func (d *Dog) Fetch(item string) string {
	return fmt.Sprintf("%s fetched the %s!", d.name, item)
}

// Cat is a type of animal.
type Cat struct {
	Animal
	color string
}

func NewCat(name string, age int, color string) *Cat {
	return &Cat{Animal: Animal{name: name, age: age}, color: color}
}

func (c *Cat) Color() string { return c.color }

func (c *Cat) MakeSound() string { return "Meow!" }

func (c *Cat) Purr() string {
	return fmt.Sprintf("%s is purring...", c.name)
}

// Owner is a person who owns pets.
type Owner struct {
	name string
	pets []Pet
}

func NewOwner(name string) *Owner {
	return &Owner{name: name}
}

func (o *Owner) Name() string { return o.name }

// AddPet adds a pet to the owner's collection.
func (o *Owner) AddPet(p Pet) string {
	o.pets = append(o.pets, p)
	return fmt.Sprintf("%s now owns %s", o.name, p.Name())
}

func (o *Owner) Pets() []Pet { return o.pets }

func (o *Owner) ListPets() string {
	if len(o.pets) == 0 {
		return fmt.Sprintf("%s has no pets", o.name)
	}
	names := make([]string, 0, len(o.pets))
	for _, p := range o.pets {
		names = append(names, p.Name())
	}
	return fmt.Sprintf("%s owns: %s", o.name, strings.Join(names, ", "))
}

// Veterinarian is a doctor who treats animals.
type Veterinarian struct {
	name      string
	specialty string
	patients  []Pet
}

func NewVeterinarian(name, specialty string) *Veterinarian {
	return &Veterinarian{name: name, specialty: specialty}
}

func (v *Veterinarian) Name() string { return v.name }

func (v *Veterinarian) Specialty() string { return v.specialty }

// Treat records p as a patient. A pet is only recorded once.
func (v *Veterinarian) Treat(p Pet) string {
	known := false
	for _, patient := range v.patients {
		if patient == p {
			known = true
			break
		}
	}
	if !known {
		v.patients = append(v.patients, p)
	}
	return fmt.Sprintf("Dr. %s treated %s", v.name, p.Name())
}

func (v *Veterinarian) Patients() []Pet { return v.patients }

func (v *Veterinarian) PatientCount() int { return len(v.patients) }

// PetShop sells pets and supplies.
type PetShop struct {
	name           string
	animalsForSale []Pet
	veterinarian   *Veterinarian
}

func NewPetShop(name string) *PetShop {
	return &PetShop{name: name}
}

func (s *PetShop) Name() string { return s.name }

func (s *PetShop) AddAnimal(p Pet) {
	s.animalsForSale = append(s.animalsForSale, p)
}

func (s *PetShop) HireVeterinarian(v *Veterinarian) string {
	s.veterinarian = v
	return fmt.Sprintf("%s now works at %s", v.name, s.name)
}

// Veterinarian returns the hired veterinarian, or nil.
func (s *PetShop) Veterinarian() *Veterinarian { return s.veterinarian }

// SellPet moves p from the shop's inventory to the owner.
func (s *PetShop) SellPet(p Pet, o *Owner) string {
	for i, forSale := range s.animalsForSale {
		if forSale == p {
			s.animalsForSale = append(s.animalsForSale[:i], s.animalsForSale[i+1:]...)
			o.AddPet(p)
			return fmt.Sprintf("%s bought %s from %s", o.name, p.Name(), s.name)
		}
	}
	return fmt.Sprintf("%s is not available for sale", p.Name())
}
