package models

// CartItem est une ligne du panier. Le prix est celui du produit au moment
// de l'ajout, il n'est pas revalidé ensuite.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"image_url,omitempty"`
}

// AddItem fusionne un produit dans le panier. La fusion se fait par nom :
// si une ligne porte déjà ce nom, sa quantité est incrémentée de 1,
// sinon une nouvelle ligne est ajoutée en fin de liste.
func AddItem(cart []CartItem, item CartItem) []CartItem {
	for i := range cart {
		if cart[i].Name == item.Name {
			cart[i].Quantity++
			return cart
		}
	}
	item.Quantity = 1
	return append(cart, item)
}

// SetQuantity fixe la quantité d'une ligne. Une quantité < 1 est refusée
// et le panier reste inchangé.
func SetQuantity(cart []CartItem, itemID string, quantity int) ([]CartItem, bool) {
	if quantity < 1 {
		return cart, false
	}
	for i := range cart {
		if cart[i].ID == itemID {
			cart[i].Quantity = quantity
			return cart, true
		}
	}
	return cart, false
}

// RemoveItem supprime une ligne par id en conservant l'ordre des autres.
func RemoveItem(cart []CartItem, itemID string) []CartItem {
	out := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID != itemID {
			out = append(out, item)
		}
	}
	return out
}

// CartTotal calcule la somme prix × quantité.
func CartTotal(cart []CartItem) float64 {
	total := 0.0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CartCount compte le nombre total d'articles (somme des quantités).
func CartCount(cart []CartItem) int {
	count := 0
	for _, item := range cart {
		count += item.Quantity
	}
	return count
}
