// Package instances draws live objects of the pets domain and the
// relationships between them: pets under their owners, the veterinarian
// under the shop that employs them, and "treats" edges to patients.
package instances

import (
	"fmt"
	"log/slog"

	"github.com/don7panic/codewiki-go-diagram/drawio"
	"github.com/don7panic/codewiki-go-diagram/example/pets"
)

const DefaultFileName = "pet_instances_diagram.drawio"

const (
	petStyle   = "fillColor=#d5e8d4;strokeColor=#82b366;" // green
	ownerStyle = "fillColor=#dae8fc;strokeColor=#6c8ebf;" // blue
	vetStyle   = "fillColor=#fff2cc;strokeColor=#d6b656;" // yellow
	shopStyle  = "fillColor=#f8cecc;strokeColor=#b85450;" // red

	relationshipStyle = "endArrow=open;dashed=1;strokeWidth=1.5;"
)

// World is the set of objects drawn by CreateInstanceDiagram.
type World struct {
	Pets   []pets.Pet
	Owners []*pets.Owner
	Vets   []*pets.Veterinarian
	Shops  []*pets.PetShop
}

// NewWorld builds the sample objects and wires them through the domain API.
func NewWorld() *World {
	fido := pets.NewDog("Fido", 3, "Golden Retriever")
	whiskers := pets.NewCat("Whiskers", 2, "Tabby")
	mittens := pets.NewCat("Mittens", 4, "Calico")

	john := pets.NewOwner("John")
	john.AddPet(fido)

	sarah := pets.NewOwner("Sarah")
	sarah.AddPet(whiskers)
	sarah.AddPet(mittens)

	drSmith := pets.NewVeterinarian("Smith", "General")
	drSmith.Treat(fido)
	drSmith.Treat(whiskers)

	petPalace := pets.NewPetShop("Pet Palace")
	petPalace.HireVeterinarian(drSmith)

	return &World{
		Pets:   []pets.Pet{fido, whiskers, mittens},
		Owners: []*pets.Owner{john, sarah},
		Vets:   []*pets.Veterinarian{drSmith},
		Shops:  []*pets.PetShop{petPalace},
	}
}

func petKind(p pets.Pet) string {
	switch p.(type) {
	case *pets.Dog:
		return "Dog"
	case *pets.Cat:
		return "Cat"
	default:
		return "Animal"
	}
}

// Diagram lays out the world as a tree diagram.
func (w *World) Diagram(direction drawio.Direction, linkStyle drawio.LinkStyle) (*drawio.TreeDiagram, error) {
	tree := drawio.NewTreeDiagram(direction, linkStyle)

	petNodes := make(map[pets.Pet]*drawio.NodeObject, len(w.Pets))
	for _, p := range w.Pets {
		n := tree.AddNode(fmt.Sprintf("%s (%s)", p.Name(), petKind(p)), "rounded rectangle")
		n.Style.Apply(petStyle)
		petNodes[p] = n
	}

	for _, o := range w.Owners {
		n := tree.AddNode(fmt.Sprintf("%s (Owner)", o.Name()), "rounded rectangle")
		n.Style.Apply(ownerStyle)
		for _, p := range o.Pets() {
			child, ok := petNodes[p]
			if !ok {
				continue
			}
			if err := child.SetTreeParent(n); err != nil {
				return nil, err
			}
		}
	}

	vetNodes := make(map[*pets.Veterinarian]*drawio.NodeObject, len(w.Vets))
	for _, v := range w.Vets {
		n := tree.AddNode(fmt.Sprintf("Dr. %s (Vet)", v.Name()), "rounded rectangle")
		n.Style.Apply(vetStyle)
		vetNodes[v] = n
		for _, p := range v.Patients() {
			if target, ok := petNodes[p]; ok {
				tree.AddLink(n, target, "treats", relationshipStyle)
			}
		}
	}

	for _, s := range w.Shops {
		n := tree.AddNode(fmt.Sprintf("%s (Shop)", s.Name()), "rounded rectangle")
		n.Style.Apply(shopStyle)
		if vet, ok := vetNodes[s.Veterinarian()]; ok {
			if err := vet.SetTreeParent(n); err != nil {
				return nil, err
			}
		}
	}

	tree.AutoLayout()
	return tree, nil
}

// CreateInstanceDiagram writes the sample world to outputDir/fileName and
// returns the path. An empty fileName defaults to DefaultFileName.
func CreateInstanceDiagram(outputDir, fileName string) (string, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	tree, err := NewWorld().Diagram(drawio.Down, drawio.Orthogonal)
	if err != nil {
		return "", err
	}
	out, err := tree.Write(outputDir, fileName)
	if err != nil {
		return "", err
	}
	slog.Info("instance diagram written", "component", "instances", "path", out, "nodes", len(tree.Nodes()))
	return out, nil
}
