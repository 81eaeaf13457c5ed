package namebright

// Account represents the /rest/account response.
type Account struct {
	AccountBalance float64 `json:"AccountBalance" yaml:"account_balance"`
}

// Domain mirrors the remote state of a registered domain.
type Domain struct {
	DomainName     string `json:"DomainName"     yaml:"domain_name"`
	Status         string `json:"Status"         yaml:"status"`
	ExpirationDate string `json:"ExpirationDate" yaml:"expiration_date"`
	Locked         bool   `json:"Locked"         yaml:"locked"`
	AutoRenew      bool   `json:"AutoRenew"      yaml:"auto_renew"`
	WhoisPrivacy   bool   `json:"WhoisPrivacy"   yaml:"whois_privacy"`
	Category       string `json:"Category"       yaml:"category"`
	UpgradedDomain bool   `json:"UpgradedDomain" yaml:"upgraded_domain"`
	AuthCode       string `json:"AuthCode"       yaml:"auth_code"`
}

// DomainsPage is a single page of the domain listing.
type DomainsPage struct {
	ResultsTotal int      `json:"ResultsTotal" yaml:"results_total"`
	CurrentPage  int      `json:"CurrentPage"  yaml:"current_page"`
	Domains      []Domain `json:"Domains"      yaml:"domains"`
}

// NameserversResponse represents the nameserver listing of a domain.
type NameserversResponse struct {
	DomainName  string   `json:"DomainName"  yaml:"domain_name"`
	NameServers []string `json:"NameServers" yaml:"name_servers"`
}

// RenewRequest is the form body of POST /rest/purchase/renew.
type RenewRequest struct {
	DomainName string `url:"DomainName"`
	Years      int    `url:"Years"`
}

// RenewResponse represents the order created by a renewal.
type RenewResponse struct {
	OrderID    int         `json:"OrderId"    yaml:"order_id"`
	TotalPrice float64     `json:"TotalPrice" yaml:"total_price"`
	OrderItems []OrderItem `json:"OrderItems" yaml:"order_items"`
}

// OrderItem is a single line of a renewal order.
type OrderItem struct {
	OrderItemID int     `json:"OrderItemId" yaml:"order_item_id"`
	OrderID     int     `json:"OrderId"     yaml:"order_id"`
	ProductText string  `json:"ProductText" yaml:"product_text"`
	TotalPrice  float64 `json:"TotalPrice"  yaml:"total_price"`
}

// ListDomainsParams are the query parameters of the domain listing.
type ListDomainsParams struct {
	Page           int `url:"page"`
	DomainsPerPage int `url:"domainsPerPage"`
}
