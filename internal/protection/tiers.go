package protection

import "github.com/shopspring/decimal"

// Tier is one sellable protection variant at a fixed price point.
type Tier struct {
	VariantID string
	Price     decimal.Decimal
}

// DefaultTiers is the protection product's price ladder. Each entry maps a
// variant of the shipping-protection product to its price; the plan picks the
// tier nearest the premium target.
var DefaultTiers = []Tier{
	{VariantID: "39358028185649", Price: decimal.RequireFromString("0.98")},
	{VariantID: "39358028218417", Price: decimal.RequireFromString("1.15")},
	{VariantID: "39358028251185", Price: decimal.RequireFromString("1.35")},
	{VariantID: "39358028283953", Price: decimal.RequireFromString("1.55")},
	{VariantID: "39358028316721", Price: decimal.RequireFromString("1.75")},
	{VariantID: "39358028349489", Price: decimal.RequireFromString("1.95")},
	{VariantID: "39358028382257", Price: decimal.RequireFromString("2.15")},
	{VariantID: "39358028415025", Price: decimal.RequireFromString("2.35")},
	{VariantID: "39358028447793", Price: decimal.RequireFromString("2.55")},
	{VariantID: "39358028480561", Price: decimal.RequireFromString("2.75")},
	{VariantID: "39358028513329", Price: decimal.RequireFromString("2.95")},
	{VariantID: "39358028546097", Price: decimal.RequireFromString("3.15")},
	{VariantID: "39358028578865", Price: decimal.RequireFromString("3.35")},
	{VariantID: "39358028611633", Price: decimal.RequireFromString("3.55")},
	{VariantID: "39358028644401", Price: decimal.RequireFromString("3.75")},
	{VariantID: "39358028677169", Price: decimal.RequireFromString("3.95")},
	{VariantID: "39358028709937", Price: decimal.RequireFromString("4.15")},
	{VariantID: "39358028742705", Price: decimal.RequireFromString("4.35")},
	{VariantID: "39358028775473", Price: decimal.RequireFromString("4.55")},
	{VariantID: "39358028808241", Price: decimal.RequireFromString("4.75")},
	{VariantID: "39358028841009", Price: decimal.RequireFromString("4.95")},
	{VariantID: "39358028873777", Price: decimal.RequireFromString("5.15")},
	{VariantID: "39358028906545", Price: decimal.RequireFromString("5.35")},
	{VariantID: "39358028939313", Price: decimal.RequireFromString("5.55")},
	{VariantID: "39358028972081", Price: decimal.RequireFromString("5.75")},
	{VariantID: "39358029004849", Price: decimal.RequireFromString("5.95")},
	{VariantID: "39358029037617", Price: decimal.RequireFromString("6.15")},
	{VariantID: "39358029070385", Price: decimal.RequireFromString("6.35")},
	{VariantID: "39358029103153", Price: decimal.RequireFromString("6.55")},
	{VariantID: "39358029135921", Price: decimal.RequireFromString("6.75")},
	{VariantID: "39358029168689", Price: decimal.RequireFromString("6.95")},
	{VariantID: "39358029201457", Price: decimal.RequireFromString("7.15")},
	{VariantID: "39358029234225", Price: decimal.RequireFromString("7.35")},
	{VariantID: "39358029266993", Price: decimal.RequireFromString("7.55")},
	{VariantID: "39358029299761", Price: decimal.RequireFromString("7.75")},
	{VariantID: "39358029332529", Price: decimal.RequireFromString("7.95")},
	{VariantID: "39358029365297", Price: decimal.RequireFromString("8.15")},
	{VariantID: "39358029398065", Price: decimal.RequireFromString("8.35")},
	{VariantID: "39358029430833", Price: decimal.RequireFromString("8.55")},
	{VariantID: "39358029463601", Price: decimal.RequireFromString("8.75")},
	{VariantID: "39358029496369", Price: decimal.RequireFromString("8.95")},
	{VariantID: "39358029529137", Price: decimal.RequireFromString("9.38")},
	{VariantID: "39358029561905", Price: decimal.RequireFromString("10.03")},
	{VariantID: "39358029594673", Price: decimal.RequireFromString("10.68")},
	{VariantID: "39358029627441", Price: decimal.RequireFromString("11.33")},
	{VariantID: "39358029660209", Price: decimal.RequireFromString("11.98")},
	{VariantID: "39358029692977", Price: decimal.RequireFromString("12.63")},
	{VariantID: "39358029725745", Price: decimal.RequireFromString("13.28")},
	{VariantID: "39358029758513", Price: decimal.RequireFromString("13.93")},
	{VariantID: "39358029791281", Price: decimal.RequireFromString("14.58")},
	{VariantID: "39358029824049", Price: decimal.RequireFromString("15.23")},
	{VariantID: "39358029856817", Price: decimal.RequireFromString("15.88")},
	{VariantID: "39358029889585", Price: decimal.RequireFromString("16.53")},
	{VariantID: "39358029922353", Price: decimal.RequireFromString("17.18")},
	{VariantID: "39358029955121", Price: decimal.RequireFromString("17.83")},
	{VariantID: "39358029987889", Price: decimal.RequireFromString("18.48")},
	{VariantID: "39358030020657", Price: decimal.RequireFromString("19.13")},
	{VariantID: "39358030053425", Price: decimal.RequireFromString("19.78")},
	{VariantID: "39358030086193", Price: decimal.RequireFromString("20.43")},
	{VariantID: "39358030118961", Price: decimal.RequireFromString("24.38")},
	{VariantID: "39358030151729", Price: decimal.RequireFromString("31.63")},
	{VariantID: "39358030184497", Price: decimal.RequireFromString("38.88")},
	{VariantID: "39358030217265", Price: decimal.RequireFromString("46.13")},
	{VariantID: "39358030250033", Price: decimal.RequireFromString("53.38")},
	{VariantID: "39358030282801", Price: decimal.RequireFromString("60.63")},
	{VariantID: "39358030315569", Price: decimal.RequireFromString("67.88")},
	{VariantID: "39358030348337", Price: decimal.RequireFromString("75.13")},
	{VariantID: "39358030381105", Price: decimal.RequireFromString("82.38")},
	{VariantID: "39358030413873", Price: decimal.RequireFromString("89.63")},
	{VariantID: "39358030446641", Price: decimal.RequireFromString("96.88")},
	{VariantID: "39358030479409", Price: decimal.RequireFromString("104.13")},
	{VariantID: "39358030512177", Price: decimal.RequireFromString("111.38")},
	{VariantID: "39358030544945", Price: decimal.RequireFromString("118.63")},
	{VariantID: "39358030577713", Price: decimal.RequireFromString("125.88")},
	{VariantID: "39358030610481", Price: decimal.RequireFromString("133.13")},
	{VariantID: "39358030643249", Price: decimal.RequireFromString("140.38")},
	{VariantID: "39430907166769", Price: decimal.RequireFromString("147.63")},
	{VariantID: "39430907199537", Price: decimal.RequireFromString("154.88")},
	{VariantID: "39430907330609", Price: decimal.RequireFromString("162.13")},
	{VariantID: "39430907363377", Price: decimal.RequireFromString("169.38")},
	{VariantID: "39430907396145", Price: decimal.RequireFromString("176.63")},
	{VariantID: "39430907428913", Price: decimal.RequireFromString("186.78")},
	{VariantID: "39430907494449", Price: decimal.RequireFromString("196.93")},
	{VariantID: "39430907527217", Price: decimal.RequireFromString("207.08")},
	{VariantID: "39430907559985", Price: decimal.RequireFromString("217.23")},
	{VariantID: "39430907592753", Price: decimal.RequireFromString("227.38")},
	{VariantID: "39430907625521", Price: decimal.RequireFromString("237.53")},
	{VariantID: "39430907658289", Price: decimal.RequireFromString("247.68")},
	{VariantID: "39430907691057", Price: decimal.RequireFromString("257.83")},
	{VariantID: "39430907756593", Price: decimal.RequireFromString("267.98")},
	{VariantID: "39430907822129", Price: decimal.RequireFromString("278.13")},
	{VariantID: "39430907854897", Price: decimal.RequireFromString("292.08")},
	{VariantID: "39430907887665", Price: decimal.RequireFromString("306.03")},
	{VariantID: "39430907920433", Price: decimal.RequireFromString("319.98")},
	{VariantID: "39430907985969", Price: decimal.RequireFromString("333.93")},
	{VariantID: "39430908051505", Price: decimal.RequireFromString("347.88")},
	{VariantID: "39430908149809", Price: decimal.RequireFromString("361.83")},
	{VariantID: "39430908215345", Price: decimal.RequireFromString("375.78")},
	{VariantID: "39430908313649", Price: decimal.RequireFromString("389.73")},
	{VariantID: "39430908379185", Price: decimal.RequireFromString("403.68")},
}
