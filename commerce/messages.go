package commerce

// Operation fallback messages shown when the server does not provide one.
// The storefront ships in Turkish; localization of the client core is the
// view layer's concern.
const (
	MsgFetchFailed  = "Sepet yüklenirken bir hata oluştu"
	MsgAddFailed    = "Ürün sepete eklenirken bir hata oluştu"
	MsgUpdateFailed = "Ürün adedi güncellenirken bir hata oluştu"
	MsgRemoveFailed = "Ürün sepetten çıkarılırken bir hata oluştu"
	MsgClearFailed  = "Sepet temizlenirken bir hata oluştu"
	MsgStockFailed  = "Stok bilgisi alınamadı"
)
